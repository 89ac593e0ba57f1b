package extract

import (
	"fmt"
	"strings"
)

// Extractor turns a format-tagged document body into plain text.
// Variants are selected by the document's format tag, so adding a
// format never touches retrieval or ranking code.
type Extractor interface {
	Format() string
	Extract(input string) (string, error)
}

var registry = map[string]Extractor{}

func Register(e Extractor) {
	key := strings.ToLower(strings.TrimSpace(e.Format()))
	if key == "" {
		return
	}
	registry[key] = e
}

func ForFormat(format string) (Extractor, error) {
	key := strings.ToLower(strings.TrimSpace(format))
	if key == "" {
		key = "text"
	}
	e := registry[key]
	if e == nil {
		return nil, fmt.Errorf("unsupported document format: %s", format)
	}
	return e, nil
}
