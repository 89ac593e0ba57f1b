package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/personapath/personapath/internal/pkg/errors"
)

type scriptedGenerator struct {
	calls    int
	failures int
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.calls <= g.failures {
		return "", errors.New("upstream 503")
	}
	return "ok", nil
}

type scriptedEmbedder struct {
	calls    int
	failures int
}

func (e *scriptedEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	e.calls++
	if e.calls <= e.failures {
		return nil, errors.New("upstream timeout")
	}
	return []float32{1, 0}, nil
}

func (e *scriptedEmbedder) ModelName() string { return "stub-embed" }

func fastRetry() RetryConfig {
	return RetryConfig{Timeout: time.Second, MaxAttempts: 3, BaseBackoff: time.Millisecond}
}

func TestGenerateRetrySucceedsAfterTransientFailure(t *testing.T) {
	inner := &scriptedGenerator{failures: 2}
	gen := WithGenerateRetry(inner, fastRetry())

	text, err := gen.Generate(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "ok", text)
	require.Equal(t, 3, inner.calls)
}

func TestGenerateRetryExhaustionReturnsUnavailable(t *testing.T) {
	inner := &scriptedGenerator{failures: 10}
	gen := WithGenerateRetry(inner, fastRetry())

	_, err := gen.Generate(context.Background(), "hello")
	require.ErrorIs(t, err, appErr.ErrGenerationUnavailable)
	require.Equal(t, 3, inner.calls)
}

func TestEmbedRetryExhaustionReturnsUnavailable(t *testing.T) {
	inner := &scriptedEmbedder{failures: 10}
	emb := WithEmbedRetry(inner, fastRetry())

	_, err := emb.Embed(context.Background(), "hello", "RETRIEVAL_QUERY")
	require.ErrorIs(t, err, appErr.ErrEmbeddingUnavailable)
	require.Equal(t, 3, inner.calls)
	require.Equal(t, "stub-embed", emb.ModelName())
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &scriptedGenerator{failures: 10}
	gen := WithGenerateRetry(inner, fastRetry())
	_, err := gen.Generate(ctx, "hello")
	require.Error(t, err)
	require.LessOrEqual(t, inner.calls, 1)
}
