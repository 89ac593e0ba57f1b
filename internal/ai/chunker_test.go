package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkEmpty(t *testing.T) {
	require.Nil(t, Chunk(""))
	require.Nil(t, Chunk("\n\n  \n\n"))
}

func TestChunkSmallTextSingleChunk(t *testing.T) {
	text := "First paragraph about role requirements.\n\nSecond paragraph about growth."
	chunks := Chunk(text)
	require.Len(t, chunks, 1)
	require.Contains(t, chunks[0], "First paragraph")
	require.Contains(t, chunks[0], "Second paragraph")
}

func TestChunkSplitsOnBudgetWithOverlap(t *testing.T) {
	para := strings.Repeat("word ", 150) // ~150 tokens per paragraph
	text := strings.TrimSpace(strings.Repeat(para+"\n\n", 6))

	chunks := Chunk(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		require.LessOrEqual(t, EstimateTokens(chunk), chunkTokenBudget+chunkOverlapTokens)
	}
}

func TestChunkDeterministic(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat(strings.Repeat("alpha beta gamma ", 30)+"\n\n", 5))
	first := Chunk(text)
	second := Chunk(text)
	require.Equal(t, first, second)
}

func TestEstimateTokens(t *testing.T) {
	require.Equal(t, 0, EstimateTokens(""))
	require.Equal(t, 3, EstimateTokens("one two three"))
	// Wide runes count per character on top of the word count.
	require.Equal(t, 4, EstimateTokens("日本語"))
	require.Equal(t, 1, EstimateTokens("   x   "))
}
