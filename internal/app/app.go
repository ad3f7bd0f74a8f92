package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"picon/config"
	"picon/internal/bridge"
	"picon/internal/cache"
	"picon/internal/dataset"
	"picon/internal/model"
	"picon/pkg/coinmarketcap"
)

type ListingsFetcher interface {
	GetLatestListings(ctx context.Context, params coinmarketcap.ListingParams) (*model.Snapshot, error)
}

type StatsFetcher interface {
	GetMarkets(ctx context.Context) ([]model.Market, error)
	GetCryptoStats(ctx context.Context) (*model.Crypto, error)
}

// Archiver mirrors successful listings snapshots into long-term storage.
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, snap *model.Snapshot) error
}

// Deps are the collaborators of App. Archive may be nil.
type Deps struct {
	Listings ListingsFetcher
	Stats    StatsFetcher
	Cache    *cache.Store
	Archive  Archiver
}

// App owns the listings dataset and the stats dataset. Every method except
// the fetch jobs must run on one goroutine, the UI loop.
type App struct {
	logger *zap.Logger
	params coinmarketcap.ListingParams

	listings ListingsFetcher
	markets  StatsFetcher
	cache    *cache.Store
	archive  Archiver

	bridge *bridge.Bridge
	engine *dataset.Engine
	stats  *model.MarketStats

	notice Notice
	now    func() time.Time
}

func New(cfg *config.Config, logger *zap.Logger, deps Deps) (*App, error) {
	if deps.Listings == nil || deps.Stats == nil || deps.Cache == nil {
		return nil, errors.New("app: listings, stats and cache dependencies are required")
	}

	b, err := bridge.New(context.Background(), cfg.Bridge.Capacity, logger)
	if err != nil {
		return nil, fmt.Errorf("create bridge: %w", err)
	}

	a := &App{
		logger: logger.With(zap.String("component", "app")),
		params: coinmarketcap.ListingParams{
			Start:   cfg.CoinMarketCap.Start,
			Limit:   cfg.CoinMarketCap.Limit,
			Convert: cfg.CoinMarketCap.Convert,
			Aux:     cfg.CoinMarketCap.Aux,
		},
		listings: deps.Listings,
		markets:  deps.Stats,
		cache:    deps.Cache,
		archive:  deps.Archive,
		bridge:   b,
		engine:   dataset.NewEngine(nil, deps.Cache, logger),
		stats:    &model.MarketStats{},
		now:      time.Now,
	}

	b.Register(bridge.KindLatest, a.fetchLatest)
	b.Register(bridge.KindStats, a.fetchStats)
	return a, nil
}

// Init seeds the datasets from the cache and requests the first listings fetch.
// Missing or unreadable cache files are logged and skipped.
func (a *App) Init() {
	marked, err := a.cache.LoadMarked()
	if err != nil {
		a.logCacheError("marked symbols", err)
	}
	a.engine = dataset.NewEngine(marked, a.cache, a.logger)

	if snap, err := a.cache.LoadLatest(); err != nil {
		a.logCacheError("latest listings", err)
	} else if _, err := a.engine.Adopt(snap); err != nil {
		a.logger.Warn("cached listings rejected", zap.Error(err))
	}

	if stats, err := a.cache.LoadStats(); err != nil {
		a.logCacheError("stats", err)
	} else {
		a.stats = stats
	}

	a.engine.Sort(dataset.SortMarker, false)
	a.RequestRefresh(bridge.KindLatest)
}

func (a *App) logCacheError(what string, err error) {
	if errors.Is(err, cache.ErrNotFound) {
		a.logger.Debug("no cached "+what, zap.Error(err))
		return
	}
	a.logger.Warn("failed to load cached "+what, zap.Error(err))
}

// RequestRefresh starts a background fetch of kind. It returns false when
// one is already running.
func (a *App) RequestRefresh(kind bridge.Kind) bool {
	return a.bridge.Request(kind)
}

func (a *App) IsFetchInFlight(kind bridge.Kind) bool {
	return a.bridge.InFlight(kind)
}

// DrainOne applies at most one pending fetch result. It never blocks.
func (a *App) DrainOne() (bridge.Message, bool) {
	msg, ok := a.bridge.DrainOne()
	if !ok {
		return nil, false
	}

	switch m := msg.(type) {
	case bridge.LatestResult:
		a.applyLatest(m.Snapshot)
	case bridge.StatsResult:
		a.applyStats(m.Stats)
	case bridge.Failure:
		a.logger.Warn("fetch failed", zap.Stringer("kind", m.Origin), zap.Error(m.Err))
		a.notify(LevelWarn, m.Error())
	}
	return msg, true
}

func (a *App) applyLatest(snap *model.Snapshot) {
	adopted, err := a.engine.Adopt(snap)
	var soft *dataset.SoftError
	switch {
	case errors.As(err, &soft):
		a.notify(LevelWarn, soft.Message)
	case err != nil:
		a.notify(LevelWarn, err.Error())
	case adopted:
		a.logger.Debug("listings adopted", zap.Int("assets", len(a.engine.Assets())))
	}
}

func (a *App) applyStats(stats *model.MarketStats) {
	if stats == nil {
		return
	}
	if stats.HasErrors() {
		a.notify(LevelWarn, strings.Join(stats.Errors, "\n"))
		return
	}
	a.stats = stats
}

func (a *App) Dataset() *dataset.Engine {
	return a.engine
}

func (a *App) MarketStats() *model.MarketStats {
	return a.stats
}

func (a *App) Sort(key dataset.SortKey, toggle bool) {
	a.engine.Sort(key, toggle)
}

func (a *App) ToggleMark(symbol string) bool {
	marked := a.engine.ToggleMark(symbol)
	if marked {
		a.notify(LevelInfo, symbol+" marked")
	} else {
		a.notify(LevelInfo, symbol+" unmarked")
	}
	return marked
}

func (a *App) IsMarked(symbol string) bool {
	return a.engine.IsMarked(symbol)
}
