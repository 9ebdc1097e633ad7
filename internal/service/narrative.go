package service

import (
	"fmt"
	"strings"

	"github.com/guttosm/stockaigent/internal/domain/models"
	"github.com/guttosm/stockaigent/internal/metrics"
)

// headline is the one-line brief title for a market.
func headline(m models.Market, metric models.MarketMetric) string {
	name := fmt.Sprintf("%s benchmark (%s)", m, strings.ToUpper(metric.Symbol))
	if metric.ChangePct == nil {
		return name + ": awaiting a fresh close"
	}
	return fmt.Sprintf("%s %s %.2f%% on the day", name, direction(*metric.ChangePct), abs(*metric.ChangePct))
}

// summary describes the week, the FX fixing and the largest mover.
func summary(metric models.MarketMetric, fx models.FxQuote, movers []models.Mover) string {
	var parts []string

	if metric.WeekChangePct != nil {
		parts = append(parts, fmt.Sprintf("Over five sessions the benchmark is %s %.2f%%.", direction(*metric.WeekChangePct), abs(*metric.WeekChangePct)))
	} else {
		parts = append(parts, "Not enough history for a week-over-week read.")
	}

	if fx.Rate != nil {
		fixing := fmt.Sprintf("%s fixes at %.4f", fx.Pair, *fx.Rate)
		if fx.Date != nil {
			fixing += " (" + *fx.Date + ")"
		}
		parts = append(parts, fixing+".")
	}

	if len(movers) > 0 {
		top := movers[0]
		parts = append(parts, fmt.Sprintf("Largest mover: %s %+.2f%%.", strings.ToUpper(top.Symbol), top.ChangePct))
	}

	return strings.Join(parts, " ")
}

func direction(v float64) string {
	if v >= 0 {
		return "up"
	}
	return "down"
}

// thesis is the canned dossier narrative for a signal and risk pair.
func thesis(signal, risk string) string {
	switch {
	case signal == metrics.SignalPositive && risk == metrics.RiskLow:
		return "Steady advance on the latest session. Trend intact with contained day-to-day risk."
	case signal == metrics.SignalPositive:
		return "Strong upside move on the latest session. Momentum is favourable, but the size of the move calls for sizing discipline."
	case signal == metrics.SignalNegative && risk == metrics.RiskLow:
		return "Mild pullback on the latest session. Nothing beyond normal daily noise."
	case signal == metrics.SignalNegative:
		return "Sharp decline on the latest session. Wait for stabilisation before adding exposure."
	default:
		return "Not enough recent history to assess the latest move."
	}
}
