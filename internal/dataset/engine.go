package dataset

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"picon/internal/model"
)

// SoftError is an API response that carried status.error_message.
type SoftError struct {
	Message string
}

func (e *SoftError) Error() string {
	return fmt.Sprintf("api error: %s", e.Message)
}

// DerivedStats are counts over the current asset list.
type DerivedStats struct {
	Up24h      int
	Up7d       int
	Total      int
	ComputedAt time.Time
}

// UpPercent24h returns the share of assets with a non-negative 24h change, 0..100.
func (d DerivedStats) UpPercent24h() int {
	if d.Total == 0 {
		return 0
	}
	return d.Up24h * 100 / d.Total
}

func (d DerivedStats) UpPercent7d() int {
	if d.Total == 0 {
		return 0
	}
	return d.Up7d * 100 / d.Total
}

// MarkedSaver persists the marked set after every toggle.
type MarkedSaver interface {
	SaveMarked(symbols []string) error
}

// Engine owns the listings dataset, its sort order and the marked set.
// It is not safe for concurrent use; one goroutine owns it.
type Engine struct {
	snapshot *model.Snapshot
	assets   []model.Asset
	stats    DerivedStats
	sortKey  SortKey
	marked   MarkedSet
	saver    MarkedSaver
	logger   *zap.Logger
	now      func() time.Time
}

func NewEngine(marked []string, saver MarkedSaver, logger *zap.Logger) *Engine {
	return &Engine{
		sortKey: SortMarker,
		marked:  NewMarkedSet(marked),
		saver:   saver,
		logger:  logger.With(zap.String("component", "dataset")),
		now:     time.Now,
	}
}

// Adopt replaces the dataset with snap. A soft-error snapshot returns
// *SoftError and an empty one is ignored; neither touches the current data.
// The active sort key is re-applied to the new assets.
func (e *Engine) Adopt(snap *model.Snapshot) (bool, error) {
	if snap == nil {
		return false, nil
	}
	if msg := snap.SoftError(); msg != "" {
		return false, &SoftError{Message: msg}
	}
	if len(snap.Assets) == 0 {
		return false, nil
	}

	e.snapshot = snap
	e.assets = slices.Clone(snap.Assets)
	e.RecomputeStats()
	sortAssets(e.assets, e.sortKey, e.marked)
	return true, nil
}

// Sort orders the assets by key. When toggle is set and key is already
// active the current order is reversed instead of re-sorted.
func (e *Engine) Sort(key SortKey, toggle bool) {
	if toggle && key == e.sortKey {
		slices.Reverse(e.assets)
		return
	}
	e.sortKey = key
	sortAssets(e.assets, key, e.marked)
}

// ToggleMark flips symbol's membership and persists the set.
// The current order is left untouched.
func (e *Engine) ToggleMark(symbol string) bool {
	marked := e.marked.Toggle(symbol)
	if e.saver != nil {
		if err := e.saver.SaveMarked(e.marked.Symbols()); err != nil {
			e.logger.Warn("failed to save marked symbols", zap.Error(err))
		}
	}
	return marked
}

func (e *Engine) RecomputeStats() {
	stats := DerivedStats{Total: len(e.assets), ComputedAt: e.now()}
	for _, a := range e.assets {
		if a.Change24h() >= 0 {
			stats.Up24h++
		}
		if a.Change7d() >= 0 {
			stats.Up7d++
		}
	}
	e.stats = stats
}

// Assets returns the ordered list. Callers must not modify it.
func (e *Engine) Assets() []model.Asset {
	return e.assets
}

// Snapshot returns the last adopted snapshot, nil before the first adoption.
func (e *Engine) Snapshot() *model.Snapshot {
	return e.snapshot
}

func (e *Engine) Stats() DerivedStats {
	return e.stats
}

func (e *Engine) SortKey() SortKey {
	return e.sortKey
}

func (e *Engine) IsMarked(symbol string) bool {
	return e.marked.Has(symbol)
}

func (e *Engine) Marked() []string {
	return e.marked.Symbols()
}
