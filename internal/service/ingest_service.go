package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/personapath/personapath/internal/ai"
	"github.com/personapath/personapath/internal/docstore"
	"github.com/personapath/personapath/internal/extract"
	"github.com/personapath/personapath/internal/index"
	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
	"github.com/personapath/personapath/internal/repo"
)

type IngestService struct {
	docs       *repo.DocumentRepo
	embeddings *repo.EmbeddingRepo
	idx        index.Index
	embedder   ai.IEmbedder
	store      docstore.Store
}

func NewIngestService(
	docs *repo.DocumentRepo,
	embeddings *repo.EmbeddingRepo,
	idx index.Index,
	embedder ai.IEmbedder,
	store docstore.Store,
) *IngestService {
	return &IngestService{
		docs:       docs,
		embeddings: embeddings,
		idx:        idx,
		embedder:   embedder,
		store:      store,
	}
}

type IngestInput struct {
	Text       string
	SourceType model.SourceType
	Format     string
	Metadata   map[string]string
}

// Ingest runs the offline path: extract, chunk, embed, index.
// Documents are immutable; identical content maps back to the
// already-ingested document instead of producing a duplicate.
func (s *IngestService) Ingest(ctx context.Context, input IngestInput) (*model.Document, error) {
	extractor, err := extract.ForFormat(input.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrInvalid, err)
	}
	text, err := extractor.Extract(input.Text)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, appErr.ErrInvalid
	}

	hash := sha256.Sum256([]byte(text))
	contentHash := hex.EncodeToString(hash[:])
	if existing, err := s.docs.GetByHash(ctx, contentHash); err == nil {
		return existing, nil
	}

	doc := &model.Document{
		ID:          uuid.NewString(),
		Text:        text,
		SourceType:  input.SourceType,
		Format:      extractor.Format(),
		Metadata:    input.Metadata,
		ContentHash: contentHash,
		Ctime:       time.Now().UnixMilli(),
	}
	if err := s.docs.Save(ctx, doc); err != nil {
		return nil, err
	}
	if s.store != nil {
		if err := s.store.Save(ctx, snapshotKey(doc.ID), []byte(text)); err != nil {
			logutil.GetLogger(ctx).Warn("failed to archive document snapshot",
				zap.String("doc_id", doc.ID), zap.Error(err))
		}
	}
	if err := s.embedDocument(ctx, doc); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("document ingested",
		zap.String("doc_id", doc.ID),
		zap.String("source_type", string(doc.SourceType)),
	)
	return doc, nil
}

func (s *IngestService) embedDocument(ctx context.Context, doc *model.Document) error {
	chunks := ai.Chunk(doc.Text)
	for position, chunkText := range chunks {
		vector, err := s.embedder.Embed(ctx, chunkText, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return err
		}
		emb := &model.ChunkEmbedding{
			ChunkID:    fmt.Sprintf("%s:%d", doc.ID, position),
			DocumentID: doc.ID,
			Position:   position,
			Text:       chunkText,
			Vector:     vector,
			Version:    s.embedder.ModelName(),
		}
		if err := s.idx.Add(ctx, emb); err != nil {
			return err
		}
		if err := s.embeddings.Save(ctx, emb); err != nil {
			return err
		}
	}
	return nil
}

// Reembed refreshes a document's vectors after a model change: old
// chunks are dropped from index and store, then rebuilt under the
// active embedding version.
func (s *IngestService) Reembed(ctx context.Context, doc *model.Document) error {
	if err := s.idx.Remove(ctx, doc.ID); err != nil {
		return err
	}
	if err := s.embeddings.DeleteByDocument(ctx, doc.ID); err != nil {
		return err
	}
	return s.embedDocument(ctx, doc)
}

func (s *IngestService) Remove(ctx context.Context, documentID string) error {
	if err := s.idx.Remove(ctx, documentID); err != nil {
		return err
	}
	if err := s.embeddings.DeleteByDocument(ctx, documentID); err != nil {
		return err
	}
	return s.docs.Delete(ctx, documentID)
}

// LoadIndex replays persisted embeddings into a fresh index at
// startup. Vectors from a stale embedding version are skipped; the
// sync job re-embeds their documents later.
func (s *IngestService) LoadIndex(ctx context.Context) (int, error) {
	embs, err := s.embeddings.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	loaded := 0
	for i := range embs {
		if err := s.idx.Add(ctx, &embs[i]); err != nil {
			logutil.GetLogger(ctx).Warn("skipping stale embedding",
				zap.String("chunk_id", embs[i].ChunkID), zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded, nil
}

func snapshotKey(docID string) string {
	return "documents/" + docID + ".txt"
}
