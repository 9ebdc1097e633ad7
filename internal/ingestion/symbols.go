package ingestion

import (
	"strings"

	"github.com/guttosm/stockaigent/internal/domain/models"
)

// Suffix rules for Stooq symbols.
//
//	market  input        source symbol
//	US      "aapl"       "aapl.us"
//	US      "SPY.US"     "spy.us"
//	PL      "pko"        "pko"
//	PL      "pko.pl"     "pko"
//	any     "^spx"       "^spx"     (index symbols are never suffixed)
//	any     "eurusd.fx"  "eurusd.fx" (an explicit suffix is kept)
const (
	usSuffix = ".us"
	plSuffix = ".pl"
)

// NormalizeSymbol maps a user or config supplied ticker onto the symbol the
// quote provider expects for the given market. An empty input stays empty.
func NormalizeSymbol(market models.Market, raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || strings.HasPrefix(s, "^") {
		return s
	}

	if market == models.MarketPL {
		return strings.TrimSuffix(s, plSuffix)
	}
	if strings.Contains(s, ".") {
		return s
	}
	return s + usSuffix
}

// DisplayTicker is the form a ticker is echoed back to clients in.
func DisplayTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
