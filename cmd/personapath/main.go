package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/personapath/personapath/internal/ai"
	"github.com/personapath/personapath/internal/config"
	"github.com/personapath/personapath/internal/docstore"
	"github.com/personapath/personapath/internal/embedcache"
	"github.com/personapath/personapath/internal/handler"
	"github.com/personapath/personapath/internal/index"
	"github.com/personapath/personapath/internal/job"
	"github.com/personapath/personapath/internal/middleware"
	"github.com/personapath/personapath/internal/repo"
	"github.com/personapath/personapath/internal/schedule"
	"github.com/personapath/personapath/internal/service"
	"github.com/personapath/personapath/internal/session"
)

const (
	embeddingSyncSpec  = "*/10 * * * *"
	sessionCleanupSpec = "*/5 * * * *"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "personapath",
		Short: "personapath career intelligence server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run personapath server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db, cfg.MigrationsDir); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sqlx.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("index", cfg.Index.Type),
		zap.String("doc_store", cfg.DocStore.Type),
	)

	userRepo := repo.NewUserRepo(db)
	docRepo := repo.NewDocumentRepo(db)
	embeddingRepo := repo.NewEmbeddingRepo(db)
	roleRepo := repo.NewRoleRepo(db)
	mentorRepo := repo.NewMentorRepo(db)
	userSkillRepo := repo.NewUserSkillRepo(db)

	providerArgs := cfg.AI.Data
	if providerArgs == nil {
		providerArgs = cfg.AI
	}
	provider, err := ai.NewProvider(cfg.AI.Provider, providerArgs)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	retryCfg := ai.RetryConfig{
		Timeout:     time.Duration(cfg.AI.Timeout) * time.Second,
		MaxAttempts: cfg.AI.MaxRetries,
	}
	embedder := ai.WithEmbedRetry(ai.NewEmbedder(provider, cfg.AI.EmbedModel), retryCfg)
	embedder = embedcache.WrapLruCacheToEmbedder(embedder, cfg.AI.EmbedCacheSize, time.Hour)
	generator := ai.WithGenerateRetry(ai.NewGenerator(provider, cfg.AI.Model), retryCfg)

	idx, err := index.New(cfg.Index, embedder.ModelName())
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	store, err := docstore.New(cfg.DocStore)
	if err != nil {
		return fmt.Errorf("init doc store: %w", err)
	}

	sessions := session.NewMemoryStore(session.Budget{
		MaxTurns:  cfg.Session.MaxTurns,
		MaxTokens: cfg.Session.MaxTokens,
	})
	normalizer := service.NewSkillNormalizer(cfg.Skills)

	ingestService := service.NewIngestService(docRepo, embeddingRepo, idx, embedder, store)
	retrievalService := service.NewRetrievalService(embedder, idx, embeddingRepo, docRepo, cfg.Retrieval)
	answerService := service.NewAnswerService(generator, retrievalService, sessions)
	skillGapService := service.NewSkillGapService(roleRepo, normalizer)
	mentorService := service.NewMentorService(mentorRepo, normalizer, cfg.MentorMatch)
	careerService := service.NewCareerService(roleRepo, cfg.CareerPaths)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	profileService := service.NewProfileService(userSkillRepo, normalizer)

	// The memory index starts empty; replay persisted embeddings so
	// retrieval is warm before the first request lands.
	if cfg.Index.Type == "memory" {
		loaded, err := ingestService.LoadIndex(context.Background())
		if err != nil {
			return fmt.Errorf("load index: %w", err)
		}
		logutil.GetLogger(context.Background()).Info("index loaded", zap.Int("chunks", loaded))
	}

	deps := handler.RouterDeps{
		Auth:         handler.NewAuthHandler(authService),
		Career:       handler.NewCareerHandler(answerService, retrievalService, skillGapService, careerService, profileService),
		Mentors:      handler.NewMentorHandler(mentorService, profileService),
		Documents:    handler.NewDocumentHandler(ingestService),
		Profile:      handler.NewProfileHandler(profileService),
		Catalog:      handler.NewCatalogHandler(roleRepo, mentorRepo),
		JWTSecret:    []byte(cfg.JWTSecret),
		AIRateWindow: time.Duration(cfg.AI.RateLimitSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	idleTTL := time.Duration(cfg.Session.IdleTTLMinutes) * time.Minute
	if err := scheduler.AddJob(job.NewSessionCleanupJob(sessions, idleTTL), sessionCleanupSpec); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}
	if err := scheduler.AddJob(job.NewEmbeddingSyncJob(ingestService, embeddingRepo, embedder.ModelName(), 0), embeddingSyncSpec); err != nil {
		return fmt.Errorf("schedule embedding sync: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
