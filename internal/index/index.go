package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/personapath/personapath/internal/config"
	"github.com/personapath/personapath/internal/model"
)

// ErrVersionMismatch means a vector was produced by a different
// embedding model than the one the index was built with. Mixing
// embedding versions silently corrupts similarity, so the vector is
// rejected and the caller re-embeds.
var ErrVersionMismatch = errors.New("embedding version mismatch")

type Hit struct {
	ChunkID    string
	DocumentID string
	Score      float32
}

// Index stores chunk vectors and serves nearest-neighbor queries.
// Scores are cosine similarity, returned in descending order; that
// convention holds across every backend.
type Index interface {
	Add(ctx context.Context, emb *model.ChunkEmbedding) error
	Search(ctx context.Context, vector []float32, k int) ([]Hit, error)
	Remove(ctx context.Context, documentID string) error
	Rebuild(ctx context.Context) error
}

type Factory func(cfg config.IndexConfig, version string) (Index, error)

var registry = map[string]Factory{}

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func New(cfg config.IndexConfig, version string) (Index, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Type))
	if key == "" {
		return nil, fmt.Errorf("index.type is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported index type: %s", cfg.Type)
	}
	return factory(cfg, version)
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
