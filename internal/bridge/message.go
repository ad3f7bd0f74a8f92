package bridge

import (
	"fmt"

	"picon/internal/model"
)

// Kind identifies a dataset that can be fetched in the background.
type Kind int

const (
	KindLatest Kind = iota
	KindStats

	numKinds
)

// NumKinds is the number of dataset kinds; the channel must hold at least this many messages.
const NumKinds = int(numKinds)

func (k Kind) String() string {
	switch k {
	case KindLatest:
		return "latest"
	case KindStats:
		return "stats"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message is a worker result delivered to the owner goroutine.
// The variants are LatestResult, StatsResult and Failure.
type Message interface {
	Kind() Kind
	sealed()
}

type LatestResult struct {
	Snapshot *model.Snapshot
}

type StatsResult struct {
	Stats *model.MarketStats
}

// Failure carries a fetch error tagged with the kind that failed.
type Failure struct {
	Origin Kind
	Err    error
}

func (LatestResult) Kind() Kind { return KindLatest }
func (StatsResult) Kind() Kind { return KindStats }
func (f Failure) Kind() Kind { return f.Origin }

func (LatestResult) sealed() {}
func (StatsResult) sealed() {}
func (Failure) sealed() {}

func (f Failure) Error() string {
	return fmt.Sprintf("%s fetch failed: %v", f.Origin, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}
