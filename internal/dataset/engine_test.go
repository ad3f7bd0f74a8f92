package dataset

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"

	"go.uber.org/zap"

	"picon/internal/model"
)

type recordingSaver struct {
	calls [][]string
	err   error
}

func (r *recordingSaver) SaveMarked(symbols []string) error {
	r.calls = append(r.calls, symbols)
	return r.err
}

func asset(symbol string, rank uint32, price, ch24, ch7 float64) model.Asset {
	return model.Asset{
		ID:     uint64(rank),
		Symbol: symbol,
		Rank:   rank,
		Quote:  model.Quote{USD: model.USDQuote{Price: price, PercentChange24h: ch24, PercentChange7d: ch7}},
	}
}

func snapshotOf(assets ...model.Asset) *model.Snapshot {
	return &model.Snapshot{Status: model.Status{Timestamp: "2024-03-01T10:00:00Z"}, Assets: assets}
}

func symbols(assets []model.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.Symbol
	}
	return out
}

func newTestEngine(marked ...string) *Engine {
	return NewEngine(marked, nil, zap.NewNop())
}

func sampleSnapshot() *model.Snapshot {
	return snapshotOf(
		asset("SOL", 5, 140.2, 3.1, -1.0),
		asset("btc", 1, 61234.5, 1.2, 4.4),
		asset("ETH", 2, 3401.2, -0.4, 2.1),
		asset("doge", 9, 0.16, -2.5, -6.0),
		asset("XRP", 7, 0.62, 0, 0.8),
	)
}

// go test -v --run TestMarkerExample
func TestMarkerExample(t *testing.T) {
	e := newTestEngine("ETH")
	if _, err := e.Adopt(snapshotOf(asset("ETH", 2, 3400, 1, 1), asset("BTC", 1, 60000, 1, 1))); err != nil {
		t.Fatal(err)
	}

	if got := symbols(e.Assets()); !slices.Equal(got, []string{"ETH", "BTC"}) {
		t.Errorf("marker sort = %v", got)
	}

	e.Sort(SortRank, true)
	if got := symbols(e.Assets()); !slices.Equal(got, []string{"BTC", "ETH"}) {
		t.Errorf("rank sort = %v", got)
	}

	e.Sort(SortRank, true)
	if got := symbols(e.Assets()); !slices.Equal(got, []string{"ETH", "BTC"}) {
		t.Errorf("rank toggle = %v", got)
	}
}

// go test -v --run TestSortToggleReverses
func TestSortToggleReverses(t *testing.T) {
	keys := []SortKey{SortMarker, SortRank, SortSymbol, SortPrice, SortChange24h, SortChange7d}

	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			e := newTestEngine("XRP", "doge")
			e.Adopt(sampleSnapshot())

			e.Sort(key, false)
			sorted := symbols(e.Assets())

			e.Sort(key, true)
			reversed := symbols(e.Assets())
			want := slices.Clone(sorted)
			slices.Reverse(want)
			if !slices.Equal(reversed, want) {
				t.Errorf("toggle: got %v want %v", reversed, want)
			}

			e.Sort(key, true)
			if got := symbols(e.Assets()); !slices.Equal(got, sorted) {
				t.Errorf("double toggle: got %v want %v", got, sorted)
			}
		})
	}
}

// go test -v --run TestSortComparators
func TestSortComparators(t *testing.T) {
	e := newTestEngine()
	e.Adopt(sampleSnapshot())

	cases := []struct {
		key  SortKey
		want []string
	}{
		{SortRank, []string{"btc", "ETH", "SOL", "XRP", "doge"}},
		{SortSymbol, []string{"btc", "doge", "ETH", "SOL", "XRP"}},
		{SortPrice, []string{"doge", "XRP", "SOL", "ETH", "btc"}},
		{SortChange24h, []string{"doge", "ETH", "XRP", "btc", "SOL"}},
		{SortChange7d, []string{"doge", "SOL", "XRP", "ETH", "btc"}},
	}
	for _, tc := range cases {
		e.Sort(tc.key, false)
		if got := symbols(e.Assets()); !slices.Equal(got, tc.want) {
			t.Errorf("%s: got %v want %v", tc.key, got, tc.want)
		}
		if e.SortKey() != tc.key {
			t.Errorf("sort key = %s, want %s", e.SortKey(), tc.key)
		}
	}
}

// go test -v --run TestSortStable
func TestSortStable(t *testing.T) {
	e := newTestEngine()
	e.Adopt(snapshotOf(
		asset("AAA", 1, 1, 5, 0),
		asset("BBB", 2, 1, 5, 0),
		asset("CCC", 3, 1, 5, 0),
	))
	e.Sort(SortPrice, false)
	if got := symbols(e.Assets()); !slices.Equal(got, []string{"AAA", "BBB", "CCC"}) {
		t.Errorf("equal prices must keep rank order, got %v", got)
	}
}

// go test -v --run TestSortNaNLeast
func TestSortNaNLeast(t *testing.T) {
	e := newTestEngine()
	e.Adopt(snapshotOf(
		asset("AAA", 1, 10, 0, 0),
		asset("BBB", 2, math.NaN(), 0, 0),
		asset("CCC", 3, 5, 0, 0),
	))
	e.Sort(SortPrice, false)
	if got := symbols(e.Assets()); !slices.Equal(got, []string{"BBB", "CCC", "AAA"}) {
		t.Errorf("got %v", got)
	}
}

// go test -v --run TestMarkerSortIdempotent
func TestMarkerSortIdempotent(t *testing.T) {
	e := newTestEngine("SOL", "doge")
	e.Adopt(sampleSnapshot())

	e.Sort(SortMarker, false)
	first := symbols(e.Assets())
	e.Sort(SortMarker, false)
	if got := symbols(e.Assets()); !slices.Equal(got, first) {
		t.Errorf("marker sort not idempotent: %v then %v", first, got)
	}
	if want := []string{"SOL", "doge", "btc", "ETH", "XRP"}; !slices.Equal(first, want) {
		t.Errorf("got %v want %v", first, want)
	}
}

// go test -v --run TestAdoptSoftError
func TestAdoptSoftError(t *testing.T) {
	e := newTestEngine()
	e.Adopt(sampleSnapshot())
	e.Sort(SortPrice, false)
	before := slices.Clone(e.Assets())
	beforeSnap := e.Snapshot()

	bad := sampleSnapshot()
	bad.Status.ErrorMessage = "plan limit reached"
	adopted, err := e.Adopt(bad)

	var soft *SoftError
	if adopted || !errors.As(err, &soft) || soft.Message != "plan limit reached" {
		t.Fatalf("adopted=%v err=%v", adopted, err)
	}
	if !reflect.DeepEqual(e.Assets(), before) || e.Snapshot() != beforeSnap {
		t.Error("soft error changed the dataset")
	}
}

// go test -v --run TestAdoptEmpty
func TestAdoptEmpty(t *testing.T) {
	e := newTestEngine()
	e.Adopt(sampleSnapshot())
	before := slices.Clone(e.Assets())
	stats := e.Stats()

	adopted, err := e.Adopt(snapshotOf())
	if adopted || err != nil {
		t.Fatalf("adopted=%v err=%v", adopted, err)
	}
	if !reflect.DeepEqual(e.Assets(), before) || e.Stats() != stats {
		t.Error("empty snapshot changed the dataset")
	}
}

// go test -v --run TestAdoptKeepsSortKey
func TestAdoptKeepsSortKey(t *testing.T) {
	e := newTestEngine()
	e.Adopt(sampleSnapshot())
	e.Sort(SortSymbol, false)
	e.Sort(SortSymbol, true)

	adopted, err := e.Adopt(sampleSnapshot())
	if !adopted || err != nil {
		t.Fatalf("adopted=%v err=%v", adopted, err)
	}
	if e.SortKey() != SortSymbol {
		t.Errorf("sort key reset to %s", e.SortKey())
	}
	if got := symbols(e.Assets()); !slices.Equal(got, []string{"btc", "doge", "ETH", "SOL", "XRP"}) {
		t.Errorf("adoption should apply a fresh ascending sort, got %v", got)
	}
}

// go test -v --run TestRecomputeStats
func TestRecomputeStats(t *testing.T) {
	e := newTestEngine()
	e.Adopt(sampleSnapshot())

	s := e.Stats()
	if s.Total != 5 || s.Up24h != 3 || s.Up7d != 3 {
		t.Errorf("unexpected stats %+v", s)
	}
	if s.UpPercent24h() != 60 || s.UpPercent7d() != 60 {
		t.Errorf("unexpected percentages %d %d", s.UpPercent24h(), s.UpPercent7d())
	}
	if s.ComputedAt.IsZero() {
		t.Error("computed time not set")
	}
	if (DerivedStats{}).UpPercent24h() != 0 {
		t.Error("empty stats should report 0%")
	}
}

// go test -v --run TestToggleMark
func TestToggleMark(t *testing.T) {
	saver := &recordingSaver{}
	e := NewEngine([]string{"BTC"}, saver, zap.NewNop())
	e.Adopt(sampleSnapshot())
	e.Sort(SortPrice, false)
	order := symbols(e.Assets())

	if !e.ToggleMark("ETH") || !e.IsMarked("ETH") {
		t.Fatal("ETH should be marked")
	}
	if !slices.Equal(symbols(e.Assets()), order) {
		t.Error("toggle must not reorder")
	}
	if e.ToggleMark("ETH") || e.IsMarked("ETH") {
		t.Fatal("ETH should be unmarked")
	}

	if len(saver.calls) != 2 {
		t.Fatalf("expected 2 saves, got %d", len(saver.calls))
	}
	if !slices.Equal(saver.calls[0], []string{"BTC", "ETH"}) || !slices.Equal(saver.calls[1], []string{"BTC"}) {
		t.Errorf("unexpected saves %v", saver.calls)
	}
	if !slices.Equal(e.Marked(), []string{"BTC"}) {
		t.Errorf("marked = %v", e.Marked())
	}
}

// go test -v --run TestToggleMarkSaveFailure
func TestToggleMarkSaveFailure(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	e := NewEngine(nil, saver, zap.NewNop())

	if !e.ToggleMark("BTC") || !e.IsMarked("BTC") {
		t.Error("failed save must keep the in-memory mark")
	}
}

// go test -v --run TestParseSortKey
func TestParseSortKey(t *testing.T) {
	for k := SortMarker; k <= SortChange7d; k++ {
		got, ok := ParseSortKey(k.String())
		if !ok || got != k {
			t.Errorf("round trip of %s failed", k)
		}
	}
	if _, ok := ParseSortKey("volume"); ok {
		t.Error("unknown key parsed")
	}
}
