package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/personapath/personapath/internal/repo"
	"github.com/personapath/personapath/internal/service"
)

// EmbeddingSyncJob re-embeds documents whose vectors are missing or
// were produced by a previous embedding model, keeping the index on a
// single embedding version.
type EmbeddingSyncJob struct {
	ingest     *service.IngestService
	embeddings *repo.EmbeddingRepo
	version    string
	batchSize  int
}

func NewEmbeddingSyncJob(ingest *service.IngestService, embeddings *repo.EmbeddingRepo, version string, batchSize int) *EmbeddingSyncJob {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &EmbeddingSyncJob{
		ingest:     ingest,
		embeddings: embeddings,
		version:    version,
		batchSize:  batchSize,
	}
}

func (j *EmbeddingSyncJob) Name() string {
	return "embedding_sync"
}

func (j *EmbeddingSyncJob) Run(ctx context.Context) error {
	stale, err := j.embeddings.ListStaleDocuments(ctx, j.version, j.batchSize)
	if err != nil {
		return err
	}
	for i := range stale {
		if err := j.ingest.Reembed(ctx, &stale[i]); err != nil {
			logutil.GetLogger(ctx).Warn("re-embed failed",
				zap.String("doc_id", stale[i].ID), zap.Error(err))
			continue
		}
	}
	if len(stale) > 0 {
		logutil.GetLogger(ctx).Info("embedding sync pass done", zap.Int("documents", len(stale)))
	}
	return nil
}
