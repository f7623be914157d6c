package vipbot

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/junglebet-games/viptransfer/internal/buildinfo"
	"github.com/junglebet-games/viptransfer/internal/cache"
	"github.com/junglebet-games/viptransfer/internal/database"
	outcomeDb "github.com/junglebet-games/viptransfer/internal/database/outcome/database"
	userDb "github.com/junglebet-games/viptransfer/internal/database/user/database"
	"github.com/junglebet-games/viptransfer/internal/logging"
	"github.com/junglebet-games/viptransfer/internal/metrics"
	"github.com/junglebet-games/viptransfer/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve authorizes the bot, opens the storage, exposes /health and /metrics
// and runs the manager until ctx is done.
func Serve(ctx context.Context, config *Config) error {
	logger := logging.FromContext(ctx)
	if config.BotToken == "" {
		return fmt.Errorf(
			"bot token not found, please visit %s to register your bot and get a token",
			buildinfo.BotFatherURL,
		)
	}

	tg, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		return fmt.Errorf("bot api: %w", err)
	}

	tg.Debug = config.Debug
	logger.Infof("authorization in telegram was successful: %s", tg.Self.UserName)

	db, err := database.NewFromEnv(ctx, &config.Db)
	if err != nil {
		return fmt.Errorf("new database from env: %w", err)
	}

	defer func() {
		if err := db.Close(ctx); err != nil {
			logger.Errorf("close database: %v", err)
		}
	}()

	userCache, err := cache.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	outcomeCache, err := cache.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	srv, err := server.New(config.Port)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/health", server.HandleHealth(ctx))
	mux.Handle("/metrics", promhttp.Handler())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := srv.ServeHTTP(ctx, &http.Server{Handler: mux}); err != nil {
			logger.Errorf("srv.ServeHTTP: %v", err)
			cancel()
		}
	}()

	manager := NewManager(
		tg,
		config,
		userDb.New(db, userCache),
		outcomeDb.New(db, outcomeCache),
		metrics.New(prometheus.DefaultRegisterer),
	)
	if err := manager.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	return nil
}
