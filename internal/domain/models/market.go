package models

import "strings"

// Market identifies one of the dashboard's market tabs.
type Market string

const (
	MarketUS Market = "US"
	MarketPL Market = "PL"
)

// Markets lists every supported market in display order.
var Markets = []Market{MarketUS, MarketPL}

// ParseMarket maps a user supplied market name onto a Market.
// Matching is case-insensitive and an empty value defaults to US.
func ParseMarket(s string) (Market, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "US":
		return MarketUS, true
	case "PL":
		return MarketPL, true
	default:
		return "", false
	}
}

// SourceDescriptor describes one upstream data provider.
type SourceDescriptor struct {
	Name string `json:"name" yaml:"name" example:"Stooq"`
	URL  string `json:"url" yaml:"url" example:"https://stooq.com"`
	Note string `json:"note" yaml:"note" example:"Daily OHLC quotes for US and Warsaw listings"`
}
