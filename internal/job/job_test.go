package job

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/personapath/personapath/internal/index"
	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/repo"
	"github.com/personapath/personapath/internal/service"
	"github.com/personapath/personapath/internal/session"
)

type fixedEmbedder struct {
	version string
}

func (e fixedEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (e fixedEmbedder) ModelName() string { return e.version }

func TestEmbeddingSyncJobReembedsStaleDocuments(t *testing.T) {
	db, err := repo.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, repo.ApplyMigrations(db, filepath.Join("..", "..", "migrations")))
	defer db.Close()

	docs := repo.NewDocumentRepo(db)
	embeddings := repo.NewEmbeddingRepo(db)

	// Ingest under the old model version.
	oldIdx := index.NewMemoryIndex(2, "embed-v1")
	oldIngest := service.NewIngestService(docs, embeddings, oldIdx, fixedEmbedder{version: "embed-v1"}, nil)
	_, err = oldIngest.Ingest(context.Background(), service.IngestInput{
		Text:       "gopher role charter",
		SourceType: model.SourceTypeRole,
		Format:     "text",
	})
	require.NoError(t, err)

	// The server restarts with a new embedding model.
	newIdx := index.NewMemoryIndex(2, "embed-v2")
	newIngest := service.NewIngestService(docs, embeddings, newIdx, fixedEmbedder{version: "embed-v2"}, nil)

	syncJob := NewEmbeddingSyncJob(newIngest, embeddings, "embed-v2", 0)
	require.Equal(t, "embedding_sync", syncJob.Name())
	require.NoError(t, syncJob.Run(context.Background()))

	all, err := embeddings.ListAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, all)
	for _, emb := range all {
		require.Equal(t, "embed-v2", emb.Version)
		require.True(t, strings.Contains(emb.ChunkID, ":"))
	}
	require.Equal(t, len(all), newIdx.Len())

	// A second pass finds nothing stale.
	stale, err := embeddings.ListStaleDocuments(context.Background(), "embed-v2", 10)
	require.NoError(t, err)
	require.Empty(t, stale)
}

func TestSessionCleanupJobExpiresIdleSessions(t *testing.T) {
	sessions := session.NewMemoryStore(session.Budget{MaxTurns: 10})
	sessions.Ensure("u1").Append(model.TurnRoleUser, "hello")

	cleanup := NewSessionCleanupJob(sessions, 0)
	require.Equal(t, "session_cleanup", cleanup.Name())
	require.NoError(t, cleanup.Run(context.Background()))
	require.Empty(t, sessions.Ensure("u1").History())

	keep := NewSessionCleanupJob(sessions, time.Hour)
	sessions.Ensure("u2").Append(model.TurnRoleUser, "hello")
	require.NoError(t, keep.Run(context.Background()))
	require.Len(t, sessions.Ensure("u2").History(), 1)
}
