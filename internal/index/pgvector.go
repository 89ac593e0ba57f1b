package index

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/personapath/personapath/internal/config"
	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
)

func init() {
	Register("pgvector", createPGVectorIndex)
}

// pgIndex keeps vectors in Postgres with the pgvector extension.
// Cosine distance comes from the <=> operator; similarity is 1-d.
// Deletes are real deletes, so Rebuild has nothing to compact.
type pgIndex struct {
	db      *sqlx.DB
	dim     int
	version string
}

func createPGVectorIndex(cfg config.IndexConfig, version string) (Index, error) {
	db, err := sqlx.Connect("postgres", cfg.PGDSN)
	if err != nil {
		return nil, fmt.Errorf("connect pgvector index: %w", err)
	}
	schema := fmt.Sprintf(`CREATE EXTENSION IF NOT EXISTS vector;
CREATE TABLE IF NOT EXISTS chunk_embeddings (
	chunk_id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	version TEXT NOT NULL,
	embedding vector(%d) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunk_embeddings_document ON chunk_embeddings (document_id);`, cfg.Dimension)
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init pgvector schema: %w", err)
	}
	return &pgIndex{db: db, dim: cfg.Dimension, version: version}, nil
}

func (p *pgIndex) Add(ctx context.Context, emb *model.ChunkEmbedding) error {
	if len(emb.Vector) != p.dim {
		return fmt.Errorf("%w: got %d, index dimension %d", appErr.ErrDimensionMismatch, len(emb.Vector), p.dim)
	}
	if p.version != "" && emb.Version != p.version {
		return fmt.Errorf("%w: got %q, index version %q", ErrVersionMismatch, emb.Version, p.version)
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO chunk_embeddings (chunk_id, document_id, version, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chunk_id) DO UPDATE SET document_id = $2, version = $3, embedding = $4`,
		emb.ChunkID, emb.DocumentID, emb.Version, pgvector.NewVector(emb.Vector),
	)
	return err
}

func (p *pgIndex) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if len(vector) != p.dim {
		return nil, fmt.Errorf("%w: got %d, index dimension %d", appErr.ErrDimensionMismatch, len(vector), p.dim)
	}
	if k <= 0 {
		return nil, nil
	}
	rows, err := p.db.QueryxContext(ctx, `
		SELECT chunk_id, document_id, 1 - (embedding <=> $1) AS score
		FROM chunk_embeddings
		ORDER BY embedding <=> $1
		LIMIT $2`,
		pgvector.NewVector(vector), k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var hits []Hit
	for rows.Next() {
		var hit Hit
		if err := rows.Scan(&hit.ChunkID, &hit.DocumentID, &hit.Score); err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

func (p *pgIndex) Remove(ctx context.Context, documentID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM chunk_embeddings WHERE document_id = $1`, documentID)
	return err
}

func (p *pgIndex) Rebuild(ctx context.Context) error {
	_ = ctx
	return nil
}
