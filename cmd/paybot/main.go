package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/AnuragRai017/paybot/internal/ai"
	"github.com/AnuragRai017/paybot/internal/classify"
	"github.com/AnuragRai017/paybot/internal/compose"
	"github.com/AnuragRai017/paybot/internal/config"
	"github.com/AnuragRai017/paybot/internal/embedcache"
	"github.com/AnuragRai017/paybot/internal/handler"
	"github.com/AnuragRai017/paybot/internal/history"
	"github.com/AnuragRai017/paybot/internal/job"
	"github.com/AnuragRai017/paybot/internal/middleware"
	"github.com/AnuragRai017/paybot/internal/recordstore"
	"github.com/AnuragRai017/paybot/internal/repo"
	"github.com/AnuragRai017/paybot/internal/schedule"
	"github.com/AnuragRai017/paybot/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "paybot",
		Short: "payroll chatbot backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run paybot server",
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
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("record_store", cfg.RecordStore.Type),
	)

	var db *sql.DB
	if cfg.DB.DSN != "" {
		var err error
		db, err = repo.Open(cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
	}

	records, err := recordstore.New(cfg.RecordStore, db)
	if err != nil {
		return fmt.Errorf("init record store: %w", err)
	}

	generators := make([]ai.GeneratorEntry, 0, len(cfg.AI.Providers))
	embedders := make([]ai.EmbedderEntry, 0, len(cfg.AI.Providers))
	for _, pc := range cfg.AI.Providers {
		provider, err := ai.NewProvider(pc.Provider, pc.Args)
		if err != nil {
			return fmt.Errorf("init ai provider %s: %w", pc.Provider, err)
		}
		if pc.GenerateModel != "" {
			generators = append(generators, ai.GeneratorEntry{
				Name:      pc.Provider + "/" + pc.GenerateModel,
				Generator: ai.NewGenerator(provider, pc.GenerateModel),
			})
		}
		if pc.EmbedModel != "" {
			embedders = append(embedders, ai.EmbedderEntry{
				Name:     pc.Provider + "/" + pc.EmbedModel,
				Embedder: ai.NewEmbedder(provider, pc.EmbedModel),
			})
		}
	}
	embedder := ai.NewGroupEmbedder(embedders)
	if db != nil {
		embedder = embedcache.WrapDBCacheToEmbedder(embedder, repo.NewEmbeddingCacheRepo(db))
	}
	embedder = embedcache.WrapLruCacheToEmbedder(
		embedder,
		cfg.AI.EmbedCacheSize,
		time.Duration(cfg.AI.EmbedCacheTTLMinutes)*time.Minute,
	)

	classifier := classify.New(embedder)
	composer := compose.New(ai.NewGroupGenerator(generators))
	sessions := history.NewStore(time.Duration(cfg.History.RetentionDays) * 24 * time.Hour)
	payrollService := service.NewPayrollService(records, classifier, composer, sessions)

	deps := handler.RouterDeps{
		Chat:          handler.NewChatHandler(payrollService),
		ChatRateLimit: time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(nil),
			middleware.RequestID(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if db != nil {
		cleanup := job.NewEmbeddingCacheCleanupJob(repo.NewEmbeddingCacheRepo(db), cfg.DB.CacheKeepDays)
		if err := scheduler.AddJob(cleanup, cfg.DB.CacheCleanupCron); err != nil {
			return fmt.Errorf("schedule cleanup job: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
