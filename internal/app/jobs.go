package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"picon/internal/bridge"
	"picon/internal/model"
)

const archiveTimeout = 5 * time.Second

// fetchLatest runs on a worker goroutine. Cache and archive failures are
// logged and never fail the fetch.
func (a *App) fetchLatest(ctx context.Context) (bridge.Message, error) {
	snap, err := a.listings.GetLatestListings(ctx, a.params)
	if err != nil {
		return nil, fmt.Errorf("fetch latest listings: %w", err)
	}
	if snap == nil {
		return nil, errors.New("fetch latest listings: empty response")
	}

	if msg := snap.SoftError(); msg != "" {
		a.logger.Warn("listings returned an api error", zap.String("error_message", msg))
		return bridge.LatestResult{Snapshot: snap}, nil
	}

	if err := a.cache.SaveLatest(snap); err != nil {
		a.logger.Warn("failed to save latest listings", zap.Error(err))
	}

	if a.archive != nil && len(snap.Assets) > 0 {
		archiveCtx, cancel := context.WithTimeout(ctx, archiveTimeout)
		err := a.archive.ArchiveSnapshot(archiveCtx, snap)
		cancel()
		if err != nil {
			a.logger.Warn("failed to archive listings", zap.Error(err))
		}
	}

	a.logger.Info("fetched latest listings",
		zap.Int("assets", len(snap.Assets)),
		zap.String("timestamp", snap.Status.Timestamp))
	return bridge.LatestResult{Snapshot: snap}, nil
}

// fetchStats queries both stats endpoints concurrently. Sub-fetch failures
// are collected on the result rather than failing the job.
func (a *App) fetchStats(ctx context.Context) (bridge.Message, error) {
	var (
		markets   []model.Market
		crypto    *model.Crypto
		marketErr error
		cryptoErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		markets, marketErr = a.markets.GetMarkets(ctx)
		return nil
	})
	g.Go(func() error {
		crypto, cryptoErr = a.markets.GetCryptoStats(ctx)
		return nil
	})
	g.Wait()

	stats := &model.MarketStats{}
	if marketErr != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("fetch market error: %v", marketErr))
	} else {
		stats.Market = markets
	}
	if cryptoErr != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("fetch crypto stats error: %v", cryptoErr))
	} else if crypto != nil {
		stats.Crypto = *crypto
	}

	if stats.HasErrors() {
		a.logger.Warn("stats fetch incomplete", zap.Strings("errors", stats.Errors))
		return bridge.StatsResult{Stats: stats}, nil
	}

	if err := a.cache.SaveStats(stats); err != nil {
		a.logger.Warn("failed to save stats", zap.Error(err))
	}

	a.logger.Info("fetched market stats", zap.Int("markets", len(stats.Market)))
	return bridge.StatsResult{Stats: stats}, nil
}
