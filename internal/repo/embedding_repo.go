package repo

import (
	"context"
	"encoding/json"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/personapath/personapath/internal/model"
)

// EmbeddingRepo persists chunk embeddings so the memory index can be
// reloaded at startup and stale documents re-embedded by the sync job.
// Vectors are stored as JSON blobs, same as the metadata columns.
type EmbeddingRepo struct {
	db *sqlx.DB
}

func NewEmbeddingRepo(db *sqlx.DB) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

func (r *EmbeddingRepo) Save(ctx context.Context, emb *model.ChunkEmbedding) error {
	blob, err := json.Marshal(emb.Vector)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"chunk_id":    emb.ChunkID,
		"document_id": emb.DocumentID,
		"position":    emb.Position,
		"text":        emb.Text,
		"vector":      blob,
		"version":     emb.Version,
	}
	sqlStr, args, err := builder.BuildReplaceInsert("chunk_embeddings", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *EmbeddingRepo) ListAll(ctx context.Context) ([]model.ChunkEmbedding, error) {
	return r.list(ctx, nil)
}

func (r *EmbeddingRepo) ListByDocument(ctx context.Context, documentID string) ([]model.ChunkEmbedding, error) {
	return r.list(ctx, map[string]interface{}{"document_id": documentID})
}

func (r *EmbeddingRepo) ListByChunkIDs(ctx context.Context, chunkIDs []string) ([]model.ChunkEmbedding, error) {
	if len(chunkIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, map[string]interface{}{"chunk_id in": chunkIDs})
}

func (r *EmbeddingRepo) list(ctx context.Context, where map[string]interface{}) ([]model.ChunkEmbedding, error) {
	sqlStr, args, err := builder.BuildSelect("chunk_embeddings", where,
		[]string{"chunk_id", "document_id", "position", "text", "vector", "version"})
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []model.ChunkEmbedding
	for rows.Next() {
		var item model.ChunkEmbedding
		var blob []byte
		if err := rows.Scan(&item.ChunkID, &item.DocumentID, &item.Position, &item.Text, &blob, &item.Version); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(blob, &item.Vector); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

func (r *EmbeddingRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	where := map[string]interface{}{"document_id": documentID}
	sqlStr, args, err := builder.BuildDelete("chunk_embeddings", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListStaleDocuments finds documents whose chunks were embedded with a
// different model than the active one, or not embedded at all.
func (r *EmbeddingRepo) ListStaleDocuments(ctx context.Context, activeVersion string, limit int) ([]model.Document, error) {
	const query = `
		SELECT d.id, d.text, d.source_type, d.format, d.metadata, d.content_hash, d.ctime
		FROM documents d
		LEFT JOIN chunk_embeddings e ON d.id = e.document_id AND e.version = ?
		WHERE e.chunk_id IS NULL
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, activeVersion, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}
