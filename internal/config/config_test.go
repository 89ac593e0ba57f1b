package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `{
	"port": 8080,
	"db_path": "data.db",
	"jwt_secret": "secret",
	"ai": {"provider": "gemini", "model": "gemini-2.0-flash", "embed_model": "text-embedding-004"},
	"index": {"dimension": 768}
}`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	require.Equal(t, "memory", cfg.Index.Type)
	require.Equal(t, 4, cfg.Retrieval.TopK)
	require.InDelta(t, 0.55, cfg.Retrieval.MinScore, 1e-6)
	require.Equal(t, 3, cfg.Retrieval.OverfetchFactor)
	require.Equal(t, 1, cfg.Retrieval.MaxChunksPerDoc)
	require.Equal(t, 20, cfg.Session.MaxTurns)
	require.Equal(t, 4000, cfg.Session.MaxTokens)
	require.Equal(t, 120, cfg.Session.IdleTTLMinutes)
	require.Equal(t, 3, cfg.AI.MaxRetries)
	require.Equal(t, 30, cfg.AI.Timeout)
	require.Equal(t, 72, cfg.JWTTTLHours)
	require.Equal(t, "migrations", cfg.MigrationsDir)
	require.Len(t, cfg.Skills.ProficiencyScale, 5)
	require.InDelta(t, 0.6, cfg.MentorMatch.SkillOverlapWeight, 1e-9)
	require.InDelta(t, 0.4, cfg.MentorMatch.DomainOverlapWeight, 1e-9)
}

func TestLoadRequiresCoreFields(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing port", `{"db_path": "d", "jwt_secret": "s", "ai": {"provider": "gemini", "model": "m", "embed_model": "e"}, "index": {"dimension": 8}}`},
		{"missing db path", `{"port": 1, "jwt_secret": "s", "ai": {"provider": "gemini", "model": "m", "embed_model": "e"}, "index": {"dimension": 8}}`},
		{"missing jwt secret", `{"port": 1, "db_path": "d", "ai": {"provider": "gemini", "model": "m", "embed_model": "e"}, "index": {"dimension": 8}}`},
		{"missing provider", `{"port": 1, "db_path": "d", "jwt_secret": "s", "ai": {"model": "m", "embed_model": "e"}, "index": {"dimension": 8}}`},
		{"missing dimension", `{"port": 1, "db_path": "d", "jwt_secret": "s", "ai": {"provider": "gemini", "model": "m", "embed_model": "e"}}`},
		{"bad index type", `{"port": 1, "db_path": "d", "jwt_secret": "s", "ai": {"provider": "gemini", "model": "m", "embed_model": "e"}, "index": {"type": "faiss", "dimension": 8}}`},
		{"pgvector without dsn", `{"port": 1, "db_path": "d", "jwt_secret": "s", "ai": {"provider": "gemini", "model": "m", "embed_model": "e"}, "index": {"type": "pgvector", "dimension": 8}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(writeConfig(t, `{"port": `))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
