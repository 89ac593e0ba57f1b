package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/personapath/personapath/internal/ai"
	"github.com/personapath/personapath/internal/config"
	"github.com/personapath/personapath/internal/index"
	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/repo"
)

type RetrievalService struct {
	embedder   ai.IEmbedder
	idx        index.Index
	embeddings *repo.EmbeddingRepo
	docs       *repo.DocumentRepo
	cfg        config.RetrievalConfig
}

func NewRetrievalService(
	embedder ai.IEmbedder,
	idx index.Index,
	embeddings *repo.EmbeddingRepo,
	docs *repo.DocumentRepo,
	cfg config.RetrievalConfig,
) *RetrievalService {
	return &RetrievalService{
		embedder:   embedder,
		idx:        idx,
		embeddings: embeddings,
		docs:       docs,
		cfg:        cfg,
	}
}

// Retrieve embeds the query and returns up to k results above
// minScore, best first. The index is overfetched so that score
// filtering and per-document deduplication still leave k candidates
// when possible. An empty result is a normal outcome the caller must
// handle, not an error.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, k int, minScore float32) ([]model.RetrievalResult, error) {
	return s.retrieve(ctx, query, k, minScore, "")
}

// SimilarRoles retrieves over role documents only, for "what roles
// look like X" style queries.
func (s *RetrievalService) SimilarRoles(ctx context.Context, query string, k int) ([]model.RetrievalResult, error) {
	return s.retrieve(ctx, query, k, s.cfg.MinScore, model.SourceTypeRole)
}

func (s *RetrievalService) retrieve(ctx context.Context, query string, k int, minScore float32, sourceFilter model.SourceType) ([]model.RetrievalResult, error) {
	if k <= 0 {
		k = s.cfg.TopK
	}
	queryVec, err := s.embedder.Embed(ctx, query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	hits, err := s.idx.Search(ctx, queryVec, k*s.cfg.OverfetchFactor)
	if err != nil {
		return nil, err
	}

	// Score filter, then cap chunks per source document keeping the
	// highest-scoring ones. Hits arrive already ordered by score.
	perDoc := make(map[string]int)
	var kept []index.Hit
	for _, hit := range hits {
		if hit.Score < minScore {
			continue
		}
		if perDoc[hit.DocumentID] >= s.cfg.MaxChunksPerDoc {
			continue
		}
		perDoc[hit.DocumentID]++
		kept = append(kept, hit)
	}
	if len(kept) == 0 {
		logutil.GetLogger(ctx).Debug("no relevant context", zap.String("query", query))
		return nil, nil
	}

	chunkIDs := make([]string, 0, len(kept))
	docIDs := make([]string, 0, len(kept))
	for _, hit := range kept {
		chunkIDs = append(chunkIDs, hit.ChunkID)
		docIDs = append(docIDs, hit.DocumentID)
	}
	chunks, err := s.embeddings.ListByChunkIDs(ctx, chunkIDs)
	if err != nil {
		return nil, err
	}
	chunkText := make(map[string]string, len(chunks))
	for _, chunk := range chunks {
		chunkText[chunk.ChunkID] = chunk.Text
	}
	docs, err := s.docs.ListByIDs(ctx, docIDs)
	if err != nil {
		return nil, err
	}
	docSource := make(map[string]model.SourceType, len(docs))
	for _, doc := range docs {
		docSource[doc.ID] = doc.SourceType
	}

	results := make([]model.RetrievalResult, 0, k)
	for _, hit := range kept {
		if sourceFilter != "" && docSource[hit.DocumentID] != sourceFilter {
			continue
		}
		results = append(results, model.RetrievalResult{
			DocumentID: hit.DocumentID,
			ChunkID:    hit.ChunkID,
			Score:      hit.Score,
			Text:       chunkText[hit.ChunkID],
			SourceType: string(docSource[hit.DocumentID]),
		})
		if len(results) >= k {
			break
		}
	}
	return results, nil
}

func (s *RetrievalService) DefaultTopK() int {
	return s.cfg.TopK
}

func (s *RetrievalService) DefaultMinScore() float32 {
	return s.cfg.MinScore
}
