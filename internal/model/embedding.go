package model

// ChunkEmbedding is one embedded chunk of a document. Version carries
// the embedding model name; the index rejects vectors whose version
// differs from its own so that mixed-model similarity never happens.
type ChunkEmbedding struct {
	ChunkID    string    `json:"chunk_id"`
	DocumentID string    `json:"document_id"`
	Position   int       `json:"position"`
	Text       string    `json:"text"`
	Vector     []float32 `json:"vector"`
	Version    string    `json:"version"`
}

// RetrievalResult is an ephemeral per-query hit, ordered by
// descending score by the retriever.
type RetrievalResult struct {
	DocumentID string  `json:"document_id"`
	ChunkID    string  `json:"chunk_id"`
	Score      float32 `json:"score"`
	Text       string  `json:"text"`
	SourceType string  `json:"source_type"`
}
