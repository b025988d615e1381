package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"bookpress/internal/adapter/mail"
	"bookpress/internal/adapter/postgres"
	"bookpress/internal/adapter/redisstore"
	"bookpress/internal/adapter/storage"
	"bookpress/internal/adapter/usecase"
	"bookpress/internal/auth"
	"bookpress/internal/config"
	"bookpress/internal/cron"
	"bookpress/internal/db"

	httpadapter "bookpress/internal/adapter/http"
)

// main is the entry point of the bookpress backend. It loads
// configuration, optionally runs migrations and the seeder, wires the
// adapters onto the usecases and starts the HTTP server plus the blog
// publisher. On receiving a termination signal it gracefully shuts both
// down.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Local setups keep their variables in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	mailer, err := mail.New(ctx, cfg.Mail)
	if err != nil {
		logger.Error("mail transport error", slog.Any("error", err))
		os.Exit(1)
	}

	uploads, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		logger.Error("object store error", slog.Any("error", err))
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	users := postgres.NewUserRepository(pool)
	blogs := postgres.NewBlogRepository(pool)
	books := postgres.NewBookRepository(pool)
	orders := postgres.NewOrderRepository(pool)
	contacts := postgres.NewContactRepository(pool)
	subscribers := postgres.NewSubscriberRepository(pool)
	newsletters := postgres.NewNewsletterRepository(pool)

	locks := redisstore.NewDispatchLock(rdb, cfg.Redis.LockTTL)
	statsCache := redisstore.NewStatsCache(rdb, cfg.Redis.StatsTTL)

	authSvc := usecase.NewAuthUseCase(users, tokens, hasher)
	blogSvc := usecase.NewBlogUseCase(blogs)
	bookSvc := usecase.NewBookUseCase(books)
	orderSvc := usecase.NewOrderUseCase(orders, books)
	contactSvc := usecase.NewContactUseCase(contacts)
	subscriberSvc := usecase.NewSubscriberUseCase(subscribers)
	newsletterSvc := usecase.NewNewsletterUseCase(newsletters, subscribers, mailer, locks, logger)
	dashboardSvc := usecase.NewDashboardUseCase(subscribers, orders, newsletters, statsCache, logger)

	publisher := cron.NewPublisher(blogSvc, logger)
	if err = publisher.Start(cfg.Cron.PublishSpec); err != nil {
		logger.Error("blog publisher error", slog.Any("error", err))
		os.Exit(1)
	}
	defer publisher.Stop()

	handler := httpadapter.NewHandler(httpadapter.Deps{
		Auth:        authSvc,
		Blogs:       blogSvc,
		Books:       bookSvc,
		Orders:      orderSvc,
		Contacts:    contactSvc,
		Subscribers: subscriberSvc,
		Newsletters: newsletterSvc,
		Dashboard:   dashboardSvc,
		Uploads:     uploads,
		Tokens:      tokens,
		Logger:      logger,
	})
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
