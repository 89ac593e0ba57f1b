package index

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
)

const testVersion = "embed-v1"

func addChunk(t *testing.T, idx *MemoryIndex, chunkID, documentID string, vector []float32) {
	t.Helper()
	require.NoError(t, idx.Add(context.Background(), &model.ChunkEmbedding{
		ChunkID:    chunkID,
		DocumentID: documentID,
		Vector:     vector,
		Version:    testVersion,
	}))
}

func TestMemoryIndexSelfRetrieval(t *testing.T) {
	idx := NewMemoryIndex(3, testVersion)
	addChunk(t, idx, "c1", "d1", []float32{1, 0, 0})
	addChunk(t, idx, "c2", "d2", []float32{0, 1, 0})
	addChunk(t, idx, "c3", "d3", []float32{0.9, 0.1, 0})

	hits, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	require.Equal(t, "c1", hits[0].ChunkID)
	require.InDelta(t, 1.0, hits[0].Score, 1e-6)
	for i := 1; i < len(hits); i++ {
		require.LessOrEqual(t, hits[i].Score, hits[i-1].Score)
	}
}

func TestMemoryIndexKCap(t *testing.T) {
	idx := NewMemoryIndex(2, testVersion)
	for i := 0; i < 10; i++ {
		addChunk(t, idx, fmt.Sprintf("c%d", i), "d1", []float32{1, float32(i) / 10})
	}
	hits, err := idx.Search(context.Background(), []float32{1, 0}, 4)
	require.NoError(t, err)
	require.Len(t, hits, 4)

	hits, err = idx.Search(context.Background(), []float32{1, 0}, 0)
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestMemoryIndexDimensionMismatch(t *testing.T) {
	idx := NewMemoryIndex(3, testVersion)
	err := idx.Add(context.Background(), &model.ChunkEmbedding{
		ChunkID: "c1", DocumentID: "d1", Vector: []float32{1, 0}, Version: testVersion,
	})
	require.ErrorIs(t, err, appErr.ErrDimensionMismatch)

	_, err = idx.Search(context.Background(), []float32{1, 0}, 3)
	require.ErrorIs(t, err, appErr.ErrDimensionMismatch)
}

func TestMemoryIndexVersionMismatch(t *testing.T) {
	idx := NewMemoryIndex(2, testVersion)
	err := idx.Add(context.Background(), &model.ChunkEmbedding{
		ChunkID: "c1", DocumentID: "d1", Vector: []float32{1, 0}, Version: "embed-v2",
	})
	require.ErrorIs(t, err, ErrVersionMismatch)
	require.Equal(t, 0, idx.Len())
}

func TestMemoryIndexTieBreakByChunkID(t *testing.T) {
	idx := NewMemoryIndex(2, testVersion)
	addChunk(t, idx, "c2", "d1", []float32{1, 0})
	addChunk(t, idx, "c1", "d2", []float32{1, 0})

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Equal(t, "c1", hits[0].ChunkID)
	require.Equal(t, "c2", hits[1].ChunkID)
}

func TestMemoryIndexRemoveAndRebuild(t *testing.T) {
	idx := NewMemoryIndex(2, testVersion)
	addChunk(t, idx, "c1", "d1", []float32{1, 0})
	addChunk(t, idx, "c2", "d1", []float32{0, 1})
	addChunk(t, idx, "c3", "d2", []float32{1, 1})
	require.Equal(t, 3, idx.Len())

	require.NoError(t, idx.Remove(context.Background(), "d1"))
	require.Equal(t, 1, idx.Len())

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "c3", hits[0].ChunkID)

	require.NoError(t, idx.Rebuild(context.Background()))
	require.Equal(t, 1, idx.Len())

	// Re-adding a removed document works after compaction.
	addChunk(t, idx, "c1", "d1", []float32{1, 0})
	require.Equal(t, 2, idx.Len())
}

func TestMemoryIndexConcurrentAddSearch(t *testing.T) {
	idx := NewMemoryIndex(2, testVersion)
	errs := make(chan error, 1000)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				errs <- idx.Add(context.Background(), &model.ChunkEmbedding{
					ChunkID:    fmt.Sprintf("c%d-%d", i, j),
					DocumentID: fmt.Sprintf("d%d", i),
					Vector:     []float32{1, float32(j)},
					Version:    testVersion,
				})
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := idx.Search(context.Background(), []float32{1, 0}, 5)
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 400, idx.Len())
}
