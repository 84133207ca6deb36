package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aura/backend/internal/analysis"
	"aura/backend/internal/api/handler"
	"aura/backend/internal/auth"
	"aura/backend/internal/catalog"
	"aura/backend/internal/complaint"
	"aura/backend/internal/config"
	"aura/backend/internal/feed"
	"aura/backend/internal/localization"
	"aura/backend/internal/models"
	"aura/backend/internal/reservation"
	"aura/backend/internal/storage"
	"aura/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// backend is the storage the server runs on: postgres + redis, or in memory.
type backend struct {
	store    storage.Storage
	sessions storage.SessionStore
	events   feed.EventSource
	close    func()
}

func setupDependencies(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*backend, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		mem := storage.NewMemoryStore()
		log.Warnw("Using in-memory storage, data is lost on restart")
		return &backend{
			store:    mem,
			sessions: mem,
			events: feed.SourceFunc(func(context.Context) <-chan models.Event {
				return mem.Events()
			}),
			close: func() {},
		}, nil
	}

	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	// 3. Migrations
	s := storage.NewStorageService(db, rdb)
	if err := s.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infow("Database and Redis connections established, migrations complete")
	return &backend{
		store:    s,
		sessions: s,
		events:   feed.RedisSource(s, log),
		close: func() {
			_ = rdb.Close()
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}, nil
}

// notifierRelay lets the services be built before the bot that lists their records.
type notifierRelay struct {
	telegram.Notifier
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := config.NewLogger(cfg.Environment, cfg.LogFile)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Errorw("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	log.Infow("Starting Aura backend", "environment", cfg.Environment, "storage", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	deps, err := setupDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	// 2. Catalog
	cat, err := catalog.New(cfg.CatalogPath, log)
	if err != nil {
		return err
	}
	if cfg.CatalogPath != "" {
		go func() {
			if err := cat.Watch(ctx); err != nil {
				log.Warnw("Catalog watcher stopped", "error", err)
			}
		}()
	}

	// 3. Analysis
	var remote analysis.RemoteClient
	if cfg.Analysis.RemoteReady() {
		client, err := analysis.NewLLMClient(cfg.Analysis)
		if err != nil {
			log.Warnw("Remote analysis unavailable, using keyword classifier", "error", err)
		} else {
			remote = client
		}
	}
	analyzer := analysis.NewAnalyzer(cfg.Analysis, remote, analysis.NewClassifier(), log)
	log.Infow("Complaint analysis ready", "remote", analyzer.RemoteEnabled(), "model", cfg.Analysis.Model)

	// 4. Services
	loc := localization.Default()
	relay := &notifierRelay{Notifier: telegram.NopNotifier{}}
	complaints := complaint.NewService(deps.store, analyzer, cat, relay, log)
	reservations := reservation.NewService(deps.store, cat, relay, log)
	authService := auth.NewService(deps.store, deps.sessions, cfg.JWTSecret, cfg.SessionTTL, log)

	if cfg.TelegramBotToken != "" {
		bot, err := telegram.NewBotService(cfg.TelegramBotToken, cfg.TelegramAdminChatID, complaints, reservations, loc, log)
		if err != nil {
			log.Warnw("Telegram notifications disabled", "error", err)
		} else {
			relay.Notifier = bot
			go bot.Run(ctx)
		}
	}

	// 5. Admin live feed
	hub := feed.NewHub(deps.events, log)
	go hub.Run(ctx)

	// 6. HTTP
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handler.NewHandler(authService, complaints, reservations, cat, analyzer, hub, loc, log)
	server := &http.Server{
		Addr:           ":" + cfg.HTTPPort,
		Handler:        handler.NewRouter(h, cfg.AllowedOrigins()),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   cfg.Analysis.Timeout + 10*time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infow("HTTP server listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Infow("HTTP server stopped")
	return nil
}
