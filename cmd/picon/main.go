package main

import (
	"context"
	"time"

	"picon/config"
	"picon/internal/app"
	"picon/internal/cache"
	"picon/internal/view"
	"picon/logger"
	"picon/pkg/apisvr"
	"picon/pkg/coinmarketcap"
	"picon/pkg/storage/postgres"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// SSM secrets
	if cfg.NeedsSecrets() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := config.NewParameterStore(ctx)
		if err == nil {
			err = cfg.ResolveSecrets(ctx, store)
		}
		cancel()
		if err != nil {
			log.Fatal("failed to resolve secrets", zap.Error(err))
		}
	}

	if cfg.CoinMarketCap.APIKey == "" {
		log.Warn("no coinmarketcap api key configured, listings fetches will fail")
	}

	deps := app.Deps{
		Listings: coinmarketcap.NewRESTClient(cfg.CoinMarketCap.BaseURL, cfg.CoinMarketCap.APIKey, cfg.CoinMarketCap.Timeout),
		Stats:    apisvr.NewRESTClient(cfg.APISvr.BaseURL, cfg.APISvr.Timeout, cfg.APISvr.InsecureSkipVerify),
		Cache:    cache.New(cfg.Cache.Dir, log),
	}

	// optional Postgres archive
	if cfg.Postgres.Enabled {
		postgresClient, err := postgres.InitializeAndMigrateQuoteRecord(cfg.Postgres, true)
		if err != nil {
			log.Warn("snapshot archive disabled", zap.Error(err))
		} else {
			defer postgresClient.Close()
			deps.Archive = postgresClient
		}
	}

	a, err := app.New(cfg, log, deps)
	if err != nil {
		log.Fatal("failed to create app", zap.Error(err))
	}
	a.Init()

	log.Info("picon started", zap.String("cache_dir", cfg.Cache.Dir), zap.Bool("archive", deps.Archive != nil))

	if _, err := tea.NewProgram(view.New(a, cfg.UI), tea.WithAltScreen()).Run(); err != nil {
		log.Fatal("terminal ui failed", zap.Error(err))
	}
}
