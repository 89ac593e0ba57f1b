package ai

import (
	"strings"
)

const (
	chunkTokenBudget   = 400
	chunkOverlapTokens = 80
)

// Chunk splits extracted plain text into embedding-sized pieces.
// Paragraphs (blank-line separated) are accumulated until the token
// budget is reached; a trailing overlap is carried into the next chunk
// so context is not cut mid-thought. The split is a pure function of
// the text, so a document always chunks the same way.
func Chunk(text string) []string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentTokens := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, "\n\n"))

		overlapTokens := 0
		var overlap []string
		for i := len(current) - 1; i >= 0; i-- {
			t := EstimateTokens(current[i])
			if overlapTokens+t > chunkOverlapTokens {
				break
			}
			overlapTokens += t
			overlap = append([]string{current[i]}, overlap...)
		}
		// Avoid an overlap-only chunk echoing the previous one.
		if len(overlap) == len(current) {
			overlap = nil
			overlapTokens = 0
		}
		current = overlap
		currentTokens = overlapTokens
	}

	for _, p := range paragraphs {
		tokens := EstimateTokens(p)
		if currentTokens > 0 && currentTokens+tokens > chunkTokenBudget {
			flush()
		}
		current = append(current, p)
		currentTokens += tokens
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n\n"))
	}
	return chunks
}

func splitParagraphs(text string) []string {
	var out []string
	for _, part := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// EstimateTokens counts words for ASCII text and characters for wide
// runes. Rough, but stable, and errs on the safe side for budgeting.
func EstimateTokens(text string) int {
	count := 0
	for _, r := range text {
		if r > 127 {
			count++
		}
	}
	count += len(strings.Fields(text))
	if count == 0 && len(text) > 0 {
		return 1
	}
	return count
}
