package dto

import (
	"encoding/json"

	"github.com/guttosm/stockaigent/internal/domain/models"
)

// BriefResponse is returned by GET /api/brief.
type BriefResponse struct {
	Market    string                    `json:"market" example:"US"`
	UpdatedAt string                    `json:"updatedAt" example:"2024-01-02"`
	Title     string                    `json:"title" example:"US benchmark up 0.42% on the day"`
	Summary   string                    `json:"summary"`
	Metrics   models.SnapshotMetrics    `json:"metrics"`
	TopMovers []models.Mover            `json:"topMovers"`
	Sources   []models.SourceDescriptor `json:"sources"`
}

// Signal is one named dashboard signal. Value is a number or a label.
type Signal struct {
	Name  string `json:"name" example:"Momentum"`
	Value any    `json:"value" swaggertype:"string" example:"0.42"`
}

// SignalsResponse is returned by GET /api/signals.
type SignalsResponse struct {
	Market  string   `json:"market" example:"US"`
	Horizon string   `json:"horizon" example:"1w"`
	Signals []Signal `json:"signals"`
}

// DossierResponse is returned by GET /api/stocks/{ticker}.
type DossierResponse struct {
	Ticker     string   `json:"ticker" example:"SPY.US"`
	Signal     string   `json:"signal" example:"Positive"`
	Confidence float64  `json:"confidence" example:"0.71"`
	Horizon    string   `json:"horizon" example:"12 weeks"`
	RiskFlag   string   `json:"riskFlag" example:"Low"`
	Thesis     string   `json:"thesis"`
	Close      *float64 `json:"close" example:"475.31"`
	ChangePct  *float64 `json:"changePct" example:"0.8"`
	Volume     *float64 `json:"volume" example:"61234567"`
	Date       string   `json:"date" example:"2024-01-02"`
}

// PortfolioResponse is returned by GET /api/portfolio/summary.
type PortfolioResponse struct {
	Allocation map[string]int     `json:"allocation"`
	Scenarios  map[string]float64 `json:"scenarios"`
}

// AlertResponse is returned by POST /api/alerts. Rule echoes the request
// body verbatim.
type AlertResponse struct {
	Status string          `json:"status" example:"created"`
	Rule   json.RawMessage `json:"rule" swaggertype:"object"`
}

// WeeklyReportResponse is returned by GET /api/reports/weekly.
type WeeklyReportResponse struct {
	Period     string   `json:"period" example:"This week"`
	Highlights []string `json:"highlights"`
}

// SourcesResponse is returned by GET /api/sources.
type SourcesResponse struct {
	Sources []models.SourceDescriptor `json:"sources"`
}
