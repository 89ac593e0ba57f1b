package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int                 `json:"port"`
	DBPath        string              `json:"db_path"`
	MigrationsDir string              `json:"migrations_dir"`
	JWTSecret     string              `json:"jwt_secret"`
	JWTTTLHours   int                 `json:"jwt_ttl_hours"`
	CORSAllowlist []string            `json:"cors_allowlist"`
	LogConfig     logger.LogConfig    `json:"log_config"`
	AI            AIConfig            `json:"ai"`
	Index         IndexConfig         `json:"index"`
	DocStore      DocStoreConfig      `json:"doc_store"`
	Retrieval     RetrievalConfig     `json:"retrieval"`
	Session       SessionConfig       `json:"session"`
	Skills        SkillsConfig        `json:"skills"`
	MentorMatch   MentorMatch         `json:"mentor_match"`
	CareerPaths   map[string][]string `json:"career_paths"`
}

type AIConfig struct {
	Provider         string      `json:"provider"`
	Model            string      `json:"model"`
	EmbedModel       string      `json:"embed_model"`
	Timeout          int         `json:"timeout"`
	MaxInputChars    int         `json:"max_input_chars"`
	MaxRetries       int         `json:"max_retries"`
	EmbedCacheSize   int         `json:"embed_cache_size"`
	RateLimitSeconds int         `json:"rate_limit_seconds"`
	Data             interface{} `json:"data"`
}

type IndexConfig struct {
	Type      string `json:"type"`
	Dimension int    `json:"dimension"`
	PGDSN     string `json:"pg_dsn"`
}

type DocStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type RetrievalConfig struct {
	TopK            int     `json:"top_k"`
	MinScore        float32 `json:"min_score"`
	OverfetchFactor int     `json:"overfetch_factor"`
	MaxChunksPerDoc int     `json:"max_chunks_per_doc"`
}

type SessionConfig struct {
	MaxTurns       int `json:"max_turns"`
	MaxTokens      int `json:"max_tokens"`
	IdleTTLMinutes int `json:"idle_ttl_minutes"`
}

// SkillsConfig externalizes the data the gap analyzer is tuned with:
// the synonym table, the ordinal proficiency scale and skill groups
// used to categorize missing skills. None of it is hardcoded.
type SkillsConfig struct {
	Synonyms         map[string]string   `json:"synonyms"`
	ProficiencyScale []string            `json:"proficiency_scale"`
	Groups           map[string][]string `json:"groups"`
}

type MentorMatch struct {
	SkillOverlapWeight   float64 `json:"skill_overlap_weight"`
	DomainOverlapWeight  float64 `json:"domain_overlap_weight"`
	AvailabilityWeight   float64 `json:"availability_weight"`
	RequireDomainOverlap bool    `json:"require_domain_overlap"`
	ExplorationNoise     float64 `json:"exploration_noise"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Port == 0 {
		return fmt.Errorf("port is required")
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AI.Provider == "" {
		return fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	if cfg.AI.EmbedModel == "" {
		return fmt.Errorf("ai.embed_model is required")
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 30
	}
	if cfg.AI.MaxRetries <= 0 {
		cfg.AI.MaxRetries = 3
	}
	if cfg.AI.MaxInputChars <= 0 {
		cfg.AI.MaxInputChars = 20000
	}
	if cfg.AI.EmbedCacheSize <= 0 {
		cfg.AI.EmbedCacheSize = 4096
	}
	switch strings.ToLower(cfg.Index.Type) {
	case "", "memory":
		cfg.Index.Type = "memory"
	case "pgvector":
		if cfg.Index.PGDSN == "" {
			return fmt.Errorf("index.pg_dsn is required for pgvector index")
		}
	default:
		return fmt.Errorf("index.type must be memory or pgvector")
	}
	if cfg.Index.Dimension <= 0 {
		return fmt.Errorf("index.dimension is required")
	}
	if cfg.DocStore.Type == "" {
		cfg.DocStore.Type = "local"
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 4
	}
	if cfg.Retrieval.MinScore <= 0 {
		cfg.Retrieval.MinScore = 0.55
	}
	if cfg.Retrieval.OverfetchFactor <= 0 {
		cfg.Retrieval.OverfetchFactor = 3
	}
	if cfg.Retrieval.MaxChunksPerDoc <= 0 {
		cfg.Retrieval.MaxChunksPerDoc = 1
	}
	if cfg.Session.MaxTurns <= 0 {
		cfg.Session.MaxTurns = 20
	}
	if cfg.Session.MaxTokens <= 0 {
		cfg.Session.MaxTokens = 4000
	}
	if cfg.Session.IdleTTLMinutes <= 0 {
		cfg.Session.IdleTTLMinutes = 120
	}
	if len(cfg.Skills.ProficiencyScale) == 0 {
		cfg.Skills.ProficiencyScale = []string{"novice", "beginner", "intermediate", "advanced", "expert"}
	}
	if cfg.MentorMatch.SkillOverlapWeight == 0 && cfg.MentorMatch.DomainOverlapWeight == 0 && cfg.MentorMatch.AvailabilityWeight == 0 {
		cfg.MentorMatch.SkillOverlapWeight = 0.6
		cfg.MentorMatch.DomainOverlapWeight = 0.4
	}
	return nil
}
