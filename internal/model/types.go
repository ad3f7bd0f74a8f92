package model

import "time"

// Snapshot is one listings response as returned by /v1/cryptocurrency/listings/latest.
// The same shape is persisted to latest.json.
type Snapshot struct {
	Status Status  `json:"status"`         // Response metadata, including soft API errors
	Assets []Asset `json:"data,omitempty"` // Listings in server order
}

// Status carries the server timestamp and an application-level error, if any.
type Status struct {
	Timestamp    string `json:"timestamp"`               // RFC3339, e.g. "2024-01-02T03:04:05.000Z"
	ErrorMessage string `json:"error_message,omitempty"` // Non-empty means the body is a soft error
}

// Asset is one tradable instrument within a Snapshot.
type Asset struct {
	ID     uint64 `json:"id"`       // CoinMarketCap id
	Symbol string `json:"symbol"`   // e.g. "BTC"
	Rank   uint32 `json:"cmc_rank"` // Requested with aux=cmc_rank
	Quote  Quote  `json:"quote"`
}

type Quote struct {
	USD USDQuote `json:"USD"`
}

type USDQuote struct {
	Price            float64 `json:"price"`
	PercentChange24h float64 `json:"percent_change_24h"`
	PercentChange7d  float64 `json:"percent_change_7d"`
}

// SoftError returns the embedded server-side error message.
func (s *Snapshot) SoftError() string {
	if s == nil {
		return ""
	}
	return s.Status.ErrorMessage
}

// Time parses the status timestamp. Zero if absent or malformed.
func (s *Snapshot) Time() time.Time {
	if s == nil || s.Status.Timestamp == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s.Status.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func (a Asset) Price() float64 { return a.Quote.USD.Price }
func (a Asset) Change24h() float64 { return a.Quote.USD.PercentChange24h }
func (a Asset) Change7d() float64 { return a.Quote.USD.PercentChange7d }
