package dataset

import (
	"cmp"
	"slices"
	"strings"

	"picon/internal/model"
)

// SortKey selects the comparator used to order the asset list.
type SortKey int

const (
	SortMarker SortKey = iota
	SortRank
	SortSymbol
	SortPrice
	SortChange24h
	SortChange7d
)

func (k SortKey) String() string {
	switch k {
	case SortMarker:
		return "marker"
	case SortRank:
		return "rank"
	case SortSymbol:
		return "symbol"
	case SortPrice:
		return "price"
	case SortChange24h:
		return "24h"
	case SortChange7d:
		return "7d"
	default:
		return "unknown"
	}
}

// ParseSortKey is the inverse of String.
func ParseSortKey(s string) (SortKey, bool) {
	for k := SortMarker; k <= SortChange7d; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return SortMarker, false
}

func byRank(a, b model.Asset) int {
	return cmp.Compare(a.Rank, b.Rank)
}

func bySymbol(a, b model.Asset) int {
	return strings.Compare(strings.ToUpper(a.Symbol), strings.ToUpper(b.Symbol))
}

// cmp.Compare orders NaN before every other value.
func byPrice(a, b model.Asset) int {
	return cmp.Compare(a.Price(), b.Price())
}

func byChange24h(a, b model.Asset) int {
	return cmp.Compare(a.Change24h(), b.Change24h())
}

func byChange7d(a, b model.Asset) int {
	return cmp.Compare(a.Change7d(), b.Change7d())
}

// sortAssets orders assets for key. Every pass is stable.
func sortAssets(assets []model.Asset, key SortKey, marked MarkedSet) {
	switch key {
	case SortMarker:
		slices.SortStableFunc(assets, byRank)
		slices.SortStableFunc(assets, func(a, b model.Asset) int {
			// marked first
			return cmp.Compare(marked.rank(b.Symbol), marked.rank(a.Symbol))
		})
	case SortRank:
		slices.SortStableFunc(assets, byRank)
	case SortSymbol:
		slices.SortStableFunc(assets, bySymbol)
	case SortPrice:
		slices.SortStableFunc(assets, byPrice)
	case SortChange24h:
		slices.SortStableFunc(assets, byChange24h)
	case SortChange7d:
		slices.SortStableFunc(assets, byChange7d)
	}
}
