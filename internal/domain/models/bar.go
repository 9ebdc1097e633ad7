package models

// Bar represents one trading day's observation for a symbol.
//
// Fields:
//   - Date: the upstream date token, kept verbatim (e.g., "2024-01-02").
//     It is never parsed as a calendar date.
//   - Open, High, Low, Close, Volume: nil when the upstream cell was empty
//     or not a number. A Bar without Close is never constructed.
type Bar struct {
	Date   string   `json:"date" example:"2024-01-02"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close" example:"11"`
	Volume *float64 `json:"volume" example:"150"`
}

// BarSeries is an ordered sequence of bars for one symbol, oldest first,
// exactly as emitted by the upstream. It is not modified after a fetch.
type BarSeries []Bar

// FetchResult is the outcome of fetching one symbol's series.
// Exactly one of Series/Err is meaningful: when Err is set the symbol is
// treated as absent by every consumer.
type FetchResult struct {
	Symbol string
	Series BarSeries
	Err    error
}

// Float returns a pointer to v. Handy for building bars in code and tests.
func Float(v float64) *float64 { return &v }
