package models

import "time"

// FxQuote is a reference exchange rate for one currency pair.
// Rate and Date are nil when the provider had no observation.
type FxQuote struct {
	Pair string   `json:"pair" example:"USD/PLN"`
	Rate *float64 `json:"rate" example:"3.9876"`
	Date *string  `json:"date" example:"2024-01-02"`
}

// MarketMetric summarises a market's benchmark series.
// ChangePct and WeekChangePct are nil whenever the series is too short or
// the base close is missing or zero.
type MarketMetric struct {
	Symbol        string   `json:"symbol" example:"^spx"`
	Close         *float64 `json:"close" example:"4769.83"`
	ChangePct     *float64 `json:"changePct" example:"0.42"`
	WeekChangePct *float64 `json:"weekChangePct" example:"1.35"`
	Volume        *float64 `json:"volume"`
	Date          string   `json:"date" example:"2024-01-02"`
}

// Mover is a symbol ranked by the size of its day-over-day change.
type Mover struct {
	Symbol    string   `json:"symbol" example:"nvda.us"`
	Close     *float64 `json:"close" example:"495.22"`
	ChangePct float64  `json:"changePct" example:"-3.12"`
	Date      string   `json:"date" example:"2024-01-02"`
}

// SnapshotMetrics groups the per-market metrics carried by a Snapshot.
type SnapshotMetrics struct {
	US MarketMetric `json:"us"`
	PL MarketMetric `json:"pl"`
	FX FxQuote      `json:"fx"`
}

// Snapshot is the complete aggregation result shared by every dashboard
// endpoint. A Snapshot is built in one piece and never mutated after it
// has been published.
type Snapshot struct {
	UpdatedAt string             `json:"updatedAt"`
	Metrics   SnapshotMetrics    `json:"metrics"`
	TopMovers map[Market][]Mover `json:"topMovers"`
	Sources   []SourceDescriptor `json:"sources"`
	BuiltAt   time.Time          `json:"builtAt"`
}

// Metric returns the benchmark metric for m.
func (s *Snapshot) Metric(m Market) MarketMetric {
	if m == MarketPL {
		return s.Metrics.PL
	}
	return s.Metrics.US
}
