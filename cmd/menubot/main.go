package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"menu-bot/internal/bot"
	"menu-bot/internal/cart"
	"menu-bot/internal/catalog"
	"menu-bot/internal/config"
	"menu-bot/internal/session"
	"menu-bot/internal/storage"
	"menu-bot/pkg/api"
	"menu-bot/pkg/logger"
	"menu-bot/pkg/redis"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	migrate := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx); err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	db, err := storage.Connect(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	if *migrate != "" {
		if err := storage.Migrate(ctx, db.DB, *migrate, zapLogger); err != nil {
			zapLogger.Fatal("Migration command failed",
				zap.String("command", *migrate),
				zap.Error(err))
		}
		return
	}

	if err := storage.RunMigrations(ctx, db.DB, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	source, err := newCatalogSource(ctx, cfg, db, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to prepare catalog", zap.Error(err))
	}
	cartStore := cart.NewStore(db, redisClient, zapLogger)
	sessions := session.NewStore(redisClient, cfg.Redis.TTL)

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		zapLogger.Fatal("Failed to create bot API", zap.Error(err))
	}
	botAPI.Debug = cfg.Telegram.Debug

	zapLogger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID),
		zap.String("catalog_source", cfg.Catalog.Source))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.UpdateTimeout
	updates := botAPI.GetUpdatesChan(u)

	menuBot := bot.New(botAPI, source, sessions, cartStore, cfg, zapLogger)
	if err := menuBot.Start(ctx, updates); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	botAPI.StopReceivingUpdates()
	zapLogger.Info("Bot shutdown gracefully")
}

// newCatalogSource picks the configured menu backend. Either way widgets share one
// in-memory copy of each product. The Postgres cache is dropped on start since migrations
// may have changed the menu.
func newCatalogSource(ctx context.Context, cfg *config.Config, db *sqlx.DB, cache *redis.Client, logger *zap.Logger) (catalog.Source, error) {
	var src catalog.Source
	switch cfg.Catalog.Source {
	case config.CatalogSourceAPI:
		client := api.NewClient(cfg.Catalog.APIBaseURL, cfg.Catalog.APIKey, cfg.HTTPRequestTimeout, logger)
		src = catalog.NewAPISource(client)
	default:
		repo := catalog.NewRepository(db, cache, cfg.Catalog.CacheTTL, logger)
		if err := repo.Reload(ctx); err != nil {
			return nil, err
		}
		src = repo
	}
	return catalog.NewShared(src, cfg.Catalog.CacheTTL), nil
}
