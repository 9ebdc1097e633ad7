// Package metrics holds the pure change and ranking calculations behind the
// brief, signals and dossier responses. Nothing in here performs I/O.
package metrics

import (
	"math"
	"sort"

	"github.com/guttosm/stockaigent/internal/domain/models"
)

// WeekAnchor is the NthFromEnd position used for week-over-week change:
// five trading days back on a daily series. Holidays are not gap-filled.
const WeekAnchor = 6

// Dossier scoring bounds.
const (
	confidenceFloor = 0.55
	confidenceCeil  = 0.85
	moderateRiskAt  = 1.5
)

// Signal and risk labels.
const (
	SignalPositive = "Positive"
	SignalNegative = "Negative"
	SignalNeutral  = "Neutral"
	RiskLow        = "Low"
	RiskModerate   = "Moderate"
)

// LastTwo returns the final bar and the one before it. previous is nil for
// a single-bar series; both are nil for an empty one.
func LastTwo(series models.BarSeries) (latest, previous *models.Bar) {
	n := len(series)
	if n >= 1 {
		latest = &series[n-1]
	}
	if n >= 2 {
		previous = &series[n-2]
	}
	return latest, previous
}

// NthFromEnd returns the bar n positions from the end, 1-indexed from the
// latest bar. It returns nil when the series holds fewer than n bars.
func NthFromEnd(series models.BarSeries, n int) *models.Bar {
	if n < 1 || len(series) < n {
		return nil
	}
	return &series[len(series)-n]
}

// ChangePct is the percent change of latest's close against base's close.
// It returns nil when either bar or close is missing, when the base close
// is zero, or when the result is not a finite number.
func ChangePct(latest, base *models.Bar) *float64 {
	if latest == nil || base == nil || latest.Close == nil || base.Close == nil {
		return nil
	}
	if *base.Close == 0 {
		return nil
	}
	v := (*latest.Close - *base.Close) / *base.Close * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// DayChange is the latest bar's change against the previous bar.
func DayChange(series models.BarSeries) *float64 {
	return ChangePct(LastTwo(series))
}

// WeekChange is the latest bar's change against the WeekAnchor bar.
func WeekChange(series models.BarSeries) *float64 {
	latest, _ := LastTwo(series)
	return ChangePct(latest, NthFromEnd(series, WeekAnchor))
}

// Summarize builds the benchmark metric for a series.
func Summarize(symbol string, series models.BarSeries) models.MarketMetric {
	m := models.MarketMetric{
		Symbol:        symbol,
		ChangePct:     DayChange(series),
		WeekChangePct: WeekChange(series),
	}
	if latest, _ := LastTwo(series); latest != nil {
		m.Close = latest.Close
		m.Volume = latest.Volume
		m.Date = latest.Date
	}
	return m
}

// TopMovers ranks the fetched symbols by absolute day change, largest first,
// and keeps at most limit of them. Failed fetches and symbols without a day
// change are left out. Equal magnitudes keep their input order.
func TopMovers(results []models.FetchResult, limit int) []models.Mover {
	movers := make([]models.Mover, 0, len(results))
	if limit <= 0 {
		return movers
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		latest, previous := LastTwo(r.Series)
		change := ChangePct(latest, previous)
		if change == nil {
			continue
		}
		movers = append(movers, models.Mover{
			Symbol:    r.Symbol,
			Close:     latest.Close,
			ChangePct: *change,
			Date:      latest.Date,
		})
	}

	sort.SliceStable(movers, func(i, j int) bool {
		return math.Abs(movers[i].ChangePct) > math.Abs(movers[j].ChangePct)
	})
	if len(movers) > limit {
		movers = movers[:limit]
	}
	return movers
}

// Confidence maps the size of a move onto [0.55, 0.85], rounded to two
// decimals. A missing change scores the floor.
func Confidence(changePct *float64) float64 {
	c := math.Abs(valueOrZero(changePct))/5 + confidenceFloor
	return Round(math.Min(confidenceCeil, math.Max(confidenceFloor, c)), 2)
}

// RiskFlag is "Moderate" for moves of at least 1.5% in either direction.
func RiskFlag(changePct *float64) string {
	if math.Abs(valueOrZero(changePct)) >= moderateRiskAt {
		return RiskModerate
	}
	return RiskLow
}

// Signal reports the direction of a move. A missing change is Neutral.
func Signal(changePct *float64) string {
	switch {
	case changePct == nil:
		return SignalNeutral
	case *changePct >= 0:
		return SignalPositive
	default:
		return SignalNegative
	}
}

// Round rounds v to the given number of decimals.
func Round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// RoundPtr is Round for optional values.
func RoundPtr(v *float64, digits int) *float64 {
	if v == nil {
		return nil
	}
	r := Round(*v, digits)
	return &r
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
