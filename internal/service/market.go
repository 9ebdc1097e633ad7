package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/guttosm/stockaigent/internal/domain/dto"
	"github.com/guttosm/stockaigent/internal/domain/models"
	"github.com/guttosm/stockaigent/internal/ingestion"
	"github.com/guttosm/stockaigent/internal/logger"
	"github.com/guttosm/stockaigent/internal/metrics"
)

var (
	// ErrUnknownMarket is returned for a market other than US or PL.
	ErrUnknownMarket = errors.New("unknown market")
	// ErrInvalidTicker is returned for an empty or malformed ticker.
	ErrInvalidTicker = errors.New("invalid ticker")
	// ErrNoData is returned when the quote provider has no rows for a ticker.
	ErrNoData = errors.New("no quote data")
)

const (
	defaultHorizon = "1w"
	dossierHorizon = "12 weeks"
	macroDrift     = "Stable"
)

var tickerPattern = regexp.MustCompile(`^\^?[A-Za-z0-9][A-Za-z0-9._-]{0,19}$`)

// SnapshotSource provides the current market Snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

// QuoteFetcher retrieves a daily quote series for one source symbol.
type QuoteFetcher interface {
	FetchQuoteSeries(ctx context.Context, symbol string) (models.BarSeries, error)
}

// MarketService is the read side of the dashboard API. Every method except
// Dossier works off the shared Snapshot; Dossier always fetches fresh data.
type MarketService interface {
	Brief(ctx context.Context, market string) (*dto.BriefResponse, error)
	Signals(ctx context.Context, market, horizon string) (*dto.SignalsResponse, error)
	Dossier(ctx context.Context, ticker string) (*dto.DossierResponse, error)
	Sources() dto.SourcesResponse
	Portfolio() dto.PortfolioResponse
	WeeklyReport() dto.WeeklyReportResponse
	CreateAlert(ctx context.Context, rule json.RawMessage) dto.AlertResponse
}

type marketService struct {
	snapshots SnapshotSource
	quotes    QuoteFetcher
	sources   []models.SourceDescriptor
}

// NewMarketService wires the query layer to its snapshot cache, the quote
// fetcher used for dossiers and the static source registry.
func NewMarketService(snapshots SnapshotSource, quotes QuoteFetcher, sources []models.SourceDescriptor) MarketService {
	return &marketService{snapshots: snapshots, quotes: quotes, sources: slices.Clone(sources)}
}

func (s *marketService) Brief(ctx context.Context, market string) (*dto.BriefResponse, error) {
	m, err := parseMarket(market)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	metric := snap.Metric(m)
	movers := roundMovers(snap.TopMovers[m])

	return &dto.BriefResponse{
		Market:    string(m),
		UpdatedAt: snap.UpdatedAt,
		Title:     headline(m, metric),
		Summary:   summary(metric, snap.Metrics.FX, movers),
		Metrics: models.SnapshotMetrics{
			US: roundMetric(snap.Metrics.US),
			PL: roundMetric(snap.Metrics.PL),
			FX: snap.Metrics.FX,
		},
		TopMovers: movers,
		Sources:   slices.Clone(snap.Sources),
	}, nil
}

func (s *marketService) Signals(ctx context.Context, market, horizon string) (*dto.SignalsResponse, error) {
	m, err := parseMarket(market)
	if err != nil {
		return nil, err
	}
	if horizon == "" {
		horizon = defaultHorizon
	}
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	momentum := momentum(snap.Metrics.US.ChangePct, snap.Metrics.PL.ChangePct)
	return &dto.SignalsResponse{
		Market:  string(m),
		Horizon: horizon,
		Signals: []dto.Signal{
			{Name: "Momentum", Value: metrics.Round(momentum, 2)},
			{Name: "Risk", Value: metrics.Round(-0.5*abs(momentum), 2)},
			{Name: "Macro Drift", Value: macroDrift},
		},
	}, nil
}

// Dossier fetches the ticker's series on every call; arbitrary tickers are
// not part of the Snapshot and are not cached.
func (s *marketService) Dossier(ctx context.Context, ticker string) (*dto.DossierResponse, error) {
	if !tickerPattern.MatchString(ticker) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	symbol := ingestion.NormalizeSymbol(models.MarketUS, ticker)

	series, err := s.quotes.FetchQuoteSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}
	latest, previous := metrics.LastTwo(series)
	if latest == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	change := metrics.ChangePct(latest, previous)
	signal := metrics.Signal(change)
	risk := metrics.RiskFlag(change)

	return &dto.DossierResponse{
		Ticker:     ingestion.DisplayTicker(ticker),
		Signal:     signal,
		Confidence: metrics.Confidence(change),
		Horizon:    dossierHorizon,
		RiskFlag:   risk,
		Thesis:     thesis(signal, risk),
		Close:      latest.Close,
		ChangePct:  metrics.RoundPtr(change, 2),
		Volume:     latest.Volume,
		Date:       latest.Date,
	}, nil
}

func (s *marketService) Sources() dto.SourcesResponse {
	return dto.SourcesResponse{Sources: slices.Clone(s.sources)}
}

func (s *marketService) Portfolio() dto.PortfolioResponse {
	return dto.PortfolioResponse{
		Allocation: map[string]int{
			"quality":    42,
			"defensives": 28,
			"cyclicals":  20,
			"cash":       10,
		},
		Scenarios: map[string]float64{
			"base": 0.7,
			"bull": 0.85,
			"bear": 0.4,
		},
	}
}

func (s *marketService) WeeklyReport() dto.WeeklyReportResponse {
	return dto.WeeklyReportResponse{
		Period: "This week",
		Highlights: []string{
			"Macro stability with selective sector dispersion.",
			"Warsaw exporters benefit from FX calm.",
			"Quality cash-flow remains favored.",
		},
	}
}

// CreateAlert acknowledges an alert rule. Rules are not stored; the body is
// echoed back as-is, and an empty or non-JSON body becomes {}.
func (s *marketService) CreateAlert(ctx context.Context, rule json.RawMessage) dto.AlertResponse {
	if len(rule) == 0 || !json.Valid(rule) {
		rule = json.RawMessage("{}")
	}
	logger.L().Info().Int("rule_bytes", len(rule)).Msg("alert rule accepted")
	return dto.AlertResponse{Status: "created", Rule: rule}
}

func parseMarket(market string) (models.Market, error) {
	m, ok := models.ParseMarket(market)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMarket, market)
	}
	return m, nil
}

// momentum averages the day changes that are available; zero when none is.
func momentum(changes ...*float64) float64 {
	var sum float64
	n := 0
	for _, c := range changes {
		if c != nil {
			sum += *c
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func roundMetric(m models.MarketMetric) models.MarketMetric {
	m.ChangePct = metrics.RoundPtr(m.ChangePct, 2)
	m.WeekChangePct = metrics.RoundPtr(m.WeekChangePct, 2)
	return m
}

func roundMovers(in []models.Mover) []models.Mover {
	out := make([]models.Mover, len(in))
	for i, mv := range in {
		mv.ChangePct = metrics.Round(mv.ChangePct, 2)
		out[i] = mv
	}
	return out
}
