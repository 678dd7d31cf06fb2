package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grantrates-backend/config"
	"grantrates-backend/content"
	"grantrates-backend/dataset"
	"grantrates-backend/dialogue"
	"grantrates-backend/faq"
	"grantrates-backend/handlers"
	"grantrates-backend/logging"
	"grantrates-backend/models"
	"grantrates-backend/repository"
	"grantrates-backend/service"
	"grantrates-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Invalid configuration", "error", err)
	}
	if err := logging.Init(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		logging.Fatal("Failed to initialize logging", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	contentStorage, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		logging.Fatal("Failed to initialize storage", "error", err)
	}
	logging.Info("Storage initialized", "type", cfg.Storage.Type)

	// Load dataset, dialogue trees and FAQ concurrently
	var (
		ds   *dataset.Dataset
		lib  *dialogue.Library
		help *faq.FAQ
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds, err = loadDataset(gctx, cfg, contentStorage)
		return err
	})
	g.Go(func() error {
		var err error
		lib, err = dialogue.LoadLibrary(gctx, contentStorage, models.SupportedLanguages)
		return err
	})
	g.Go(func() error {
		var err error
		help, err = faq.Load(gctx, contentStorage, content.FAQPath)
		return err
	})
	if err := g.Wait(); err != nil {
		logging.Fatal("Failed to load content", "error", err)
	}
	cities, judges := ds.Counts()
	logging.Info("Content loaded", "cities", cities, "judges", judges, "languages", lib.Languages(), "faq", help.Len())

	// Initialize services
	catalogService := service.NewCatalogService(
		service.WithDataset(ds),
		service.WithFAQ(help),
	)
	chatService := service.NewChatService(
		service.ChatWithLibrary(lib),
		service.ChatWithTypingDelay(cfg.ChatTypingDelay),
		service.ChatWithSessionTTL(cfg.ChatSessionTTL),
	)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, cfg.DefaultLanguage)
	chatHandler := handlers.NewChatHandler(chatService, cfg.DefaultLanguage)

	// Setup Gin router
	gin.SetMode(cfg.GinMode)
	r := handlers.NewRouter(catalogHandler, chatHandler, handlers.RouterConfig{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         300,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logging.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", "error", err)
	}
}

func loadDataset(ctx context.Context, cfg *config.Config, s storage.Storage) (*dataset.Dataset, error) {
	if cfg.DatasetSource != config.DatasetSourcePostgres {
		return dataset.Load(ctx, s, content.DatasetPath)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	// the dataset is read once and held in memory
	defer pool.Close()

	rows, err := repository.NewJudgeRepository(pool).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	logging.Info("Dataset read from Postgres", "rows", len(rows))
	return dataset.FromRecords(rows), nil
}
