package model

import "strconv"

// MarketStats is the auxiliary market-index dataset, persisted to stats.json.
// Errors collects sub-fetch failures and is never persisted.
type MarketStats struct {
	Errors []string `json:"-"`
	Market []Market `json:"market"`
	Crypto Crypto   `json:"crypto"`
}

// Market is one economic index, e.g. an equity index or commodity.
type Market struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"precent"` // upstream spelling
}

type Crypto struct {
	GreedFear GreedFear `json:"greed_fear"`
	Global    Global    `json:"global"`
	GasFee    GasFee    `json:"gas_fee"`
}

// GreedFear holds today's and yesterday's index readings, newest first.
type GreedFear struct {
	Data []GreedFearData `json:"data"`
}

type GreedFearData struct {
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

// Level returns the numeric reading, zero when unparsable.
func (d GreedFearData) Level() int {
	n, err := strconv.Atoi(d.Value)
	if err != nil {
		return 0
	}
	return n
}

type Global struct {
	TotalMarketCapUSD            uint64  `json:"total_market_cap_usd"`
	Total24hVolumeUSD            uint64  `json:"total_24h_volume_usd"`
	BitcoinPercentageOfMarketCap float64 `json:"bitcoin_percentage_of_market_cap"`
	LastUpdated                  int64   `json:"last_updated"`
}

// GasFee is the bitcoin slow/normal/fast fee in sat/vB and the ethereum gas price in wei.
type GasFee struct {
	Bitcoin  [3]uint64 `json:"bitcoin"`
	Ethereum uint64    `json:"ethereum"`
}

// HasErrors reports whether any sub-fetch failed.
func (s *MarketStats) HasErrors() bool {
	return s != nil && len(s.Errors) > 0
}
