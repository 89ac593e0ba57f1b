package index

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/personapath/personapath/internal/config"
	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
)

func init() {
	Register("memory", createMemoryIndex)
}

func createMemoryIndex(cfg config.IndexConfig, version string) (Index, error) {
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("index.dimension is required")
	}
	return NewMemoryIndex(cfg.Dimension, version), nil
}

type memoryEntry struct {
	chunkID    string
	documentID string
	vector     []float32
	deleted    bool
}

// MemoryIndex is a flat cosine index guarded by a RWMutex. Vectors
// are copied on insert and never mutated afterwards, so an in-flight
// search sees each vector either fully present or absent. Remove
// tombstones; Rebuild compacts the tombstones away.
type MemoryIndex struct {
	mu      sync.RWMutex
	dim     int
	version string
	entries map[string]*memoryEntry
	byDoc   map[string][]string
}

func NewMemoryIndex(dimension int, version string) *MemoryIndex {
	return &MemoryIndex{
		dim:     dimension,
		version: version,
		entries: make(map[string]*memoryEntry),
		byDoc:   make(map[string][]string),
	}
}

func (m *MemoryIndex) Add(ctx context.Context, emb *model.ChunkEmbedding) error {
	_ = ctx
	if len(emb.Vector) != m.dim {
		return fmt.Errorf("%w: got %d, index dimension %d", appErr.ErrDimensionMismatch, len(emb.Vector), m.dim)
	}
	if m.version != "" && emb.Version != m.version {
		return fmt.Errorf("%w: got %q, index version %q", ErrVersionMismatch, emb.Version, m.version)
	}
	vector := make([]float32, len(emb.Vector))
	copy(vector, emb.Vector)
	entry := &memoryEntry{
		chunkID:    emb.ChunkID,
		documentID: emb.DocumentID,
		vector:     vector,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[emb.ChunkID]; !exists {
		m.byDoc[emb.DocumentID] = append(m.byDoc[emb.DocumentID], emb.ChunkID)
	}
	m.entries[emb.ChunkID] = entry
	return nil
}

func (m *MemoryIndex) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	_ = ctx
	if len(vector) != m.dim {
		return nil, fmt.Errorf("%w: got %d, index dimension %d", appErr.ErrDimensionMismatch, len(vector), m.dim)
	}
	if k <= 0 {
		return nil, nil
	}
	m.mu.RLock()
	hits := make([]Hit, 0, len(m.entries))
	for _, entry := range m.entries {
		if entry.deleted {
			continue
		}
		hits = append(hits, Hit{
			ChunkID:    entry.chunkID,
			DocumentID: entry.documentID,
			Score:      cosineSimilarity(vector, entry.vector),
		})
	}
	m.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func (m *MemoryIndex) Remove(ctx context.Context, documentID string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chunkID := range m.byDoc[documentID] {
		if entry, ok := m.entries[chunkID]; ok {
			entry.deleted = true
		}
	}
	return nil
}

func (m *MemoryIndex) Rebuild(ctx context.Context) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	for chunkID, entry := range m.entries {
		if !entry.deleted {
			continue
		}
		delete(m.entries, chunkID)
	}
	for documentID, chunkIDs := range m.byDoc {
		live := chunkIDs[:0]
		for _, chunkID := range chunkIDs {
			if _, ok := m.entries[chunkID]; ok {
				live = append(live, chunkID)
			}
		}
		if len(live) == 0 {
			delete(m.byDoc, documentID)
			continue
		}
		m.byDoc[documentID] = live
	}
	return nil
}

// Len reports live (non-tombstoned) vectors.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, entry := range m.entries {
		if !entry.deleted {
			n++
		}
	}
	return n
}
