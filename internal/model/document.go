package model

type SourceType string

const (
	SourceTypeRole    SourceType = "role"
	SourceTypeResume  SourceType = "resume"
	SourceTypeProfile SourceType = "profile"
)

// Document is an ingested text record. Documents are immutable once
// ingested; updated content arrives as a new document under a new id.
type Document struct {
	ID          string            `json:"id" db:"id"`
	Text        string            `json:"text" db:"text"`
	SourceType  SourceType        `json:"source_type" db:"source_type"`
	Format      string            `json:"format" db:"format"`
	Metadata    map[string]string `json:"metadata" db:"-"`
	ContentHash string            `json:"-" db:"content_hash"`
	Ctime       int64             `json:"ctime" db:"ctime"`
}
