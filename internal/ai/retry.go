package ai

import (
	"context"
	"errors"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/personapath/personapath/internal/pkg/errors"
)

// RetryConfig bounds how long a blocking provider call may take: a
// per-attempt timeout plus a small retry budget with exponential
// backoff. On exhaustion the call fails fast with the unavailable
// sentinel instead of hanging.
type RetryConfig struct {
	Timeout     time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = 500 * time.Millisecond
	}
	return c
}

type retryGenerator struct {
	next IGenerator
	cfg  RetryConfig
}

func WithGenerateRetry(next IGenerator, cfg RetryConfig) IGenerator {
	if next == nil {
		return nil
	}
	return &retryGenerator{next: next, cfg: cfg.withDefaults()}
}

func (g *retryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var res string
	err := runWithRetry(ctx, g.cfg, "generate", func(ctx context.Context) error {
		var err error
		res, err = g.next.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		return "", appErr.ErrGenerationUnavailable
	}
	return res, nil
}

type retryEmbedder struct {
	next IEmbedder
	cfg  RetryConfig
}

func WithEmbedRetry(next IEmbedder, cfg RetryConfig) IEmbedder {
	if next == nil {
		return nil
	}
	return &retryEmbedder{next: next, cfg: cfg.withDefaults()}
}

func (e *retryEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	var res []float32
	err := runWithRetry(ctx, e.cfg, "embed", func(ctx context.Context) error {
		var err error
		res, err = e.next.Embed(ctx, text, taskType)
		return err
	})
	if err != nil {
		return nil, appErr.ErrEmbeddingUnavailable
	}
	return res, nil
}

func (e *retryEmbedder) ModelName() string {
	return e.next.ModelName()
}

func runWithRetry(ctx context.Context, cfg RetryConfig, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := cfg.BaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		err := fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) {
			return err
		}
		logutil.GetLogger(ctx).Warn("ai call failed",
			zap.String("op", op),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return lastErr
}
