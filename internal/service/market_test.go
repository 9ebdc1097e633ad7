package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/guttosm/stockaigent/internal/domain/models"
	"github.com/guttosm/stockaigent/internal/metrics"
	"github.com/guttosm/stockaigent/internal/upstream"
	"github.com/stretchr/testify/require"
)

type stubSnapshots struct {
	snap *models.Snapshot
	err  error
}

func (s *stubSnapshots) Snapshot(_ context.Context) (*models.Snapshot, error) {
	return s.snap, s.err
}

type stubQuotes struct {
	series models.BarSeries
	err    error
	symbol string
}

func (s *stubQuotes) FetchQuoteSeries(_ context.Context, symbol string) (models.BarSeries, error) {
	s.symbol = symbol
	return s.series, s.err
}

func strPtr(s string) *string { return &s }

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		UpdatedAt: "2024-01-05",
		Metrics: models.SnapshotMetrics{
			US: models.MarketMetric{Symbol: "^spx", Close: models.Float(4700), ChangePct: models.Float(1.23456), WeekChangePct: models.Float(-2.5), Date: "2024-01-05"},
			PL: models.MarketMetric{Symbol: "wig20", Close: models.Float(2300), ChangePct: models.Float(-0.5), Date: "2024-01-05"},
			FX: models.FxQuote{Pair: "USD/PLN", Rate: models.Float(3.9876), Date: strPtr("2024-01-05")},
		},
		TopMovers: map[models.Market][]models.Mover{
			models.MarketUS: {{Symbol: "nvda.us", Close: models.Float(500), ChangePct: -3.14159, Date: "2024-01-05"}},
		},
		Sources: []models.SourceDescriptor{{Name: "Stooq", URL: "https://stooq.com"}},
	}
}

func TestBrief_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		market  string
		snaps   *stubSnapshots
		wantErr error
	}{
		{
			name:   "us market",
			market: "US",
			snaps:  &stubSnapshots{snap: testSnapshot()},
		},
		{
			name:   "default market",
			market: "",
			snaps:  &stubSnapshots{snap: testSnapshot()},
		},
		{
			name:    "unknown market",
			market:  "DE",
			snaps:   &stubSnapshots{snap: testSnapshot()},
			wantErr: ErrUnknownMarket,
		},
		{
			name:    "source unavailable",
			market:  "PL",
			snaps:   &stubSnapshots{err: upstream.ErrSourceUnavailable},
			wantErr: upstream.ErrSourceUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewMarketService(tc.snaps, &stubQuotes{}, nil)
			out, err := svc.Brief(context.Background(), tc.market)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, out)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "US", out.Market)
			require.Equal(t, "2024-01-05", out.UpdatedAt)
			require.Equal(t, 1.23, *out.Metrics.US.ChangePct)
			require.Equal(t, -2.5, *out.Metrics.US.WeekChangePct)
			require.Len(t, out.TopMovers, 1)
			require.Equal(t, -3.14, out.TopMovers[0].ChangePct)
			require.Contains(t, out.Title, "up 1.23%")
			require.Contains(t, out.Summary, "USD/PLN fixes at 3.9876")
			require.Contains(t, out.Summary, "NVDA.US -3.14%")
		})
	}
}

func TestBrief_DoesNotMutateSnapshot(t *testing.T) {
	snap := testSnapshot()
	svc := NewMarketService(&stubSnapshots{snap: snap}, &stubQuotes{}, nil)

	_, err := svc.Brief(context.Background(), "us")
	require.NoError(t, err)
	require.Equal(t, 1.23456, *snap.Metrics.US.ChangePct)
	require.Equal(t, -3.14159, snap.TopMovers[models.MarketUS][0].ChangePct)
}

func TestBrief_PLWithoutMovers(t *testing.T) {
	svc := NewMarketService(&stubSnapshots{snap: testSnapshot()}, &stubQuotes{}, nil)

	out, err := svc.Brief(context.Background(), "pl")
	require.NoError(t, err)
	require.Equal(t, "PL", out.Market)
	require.NotNil(t, out.TopMovers)
	require.Empty(t, out.TopMovers)
	require.Contains(t, out.Title, "down 0.50%")
	require.Contains(t, out.Summary, "Not enough history")

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"topMovers":[]`)
}

func TestSignals(t *testing.T) {
	cases := []struct {
		name         string
		us, pl       *float64
		horizon      string
		wantHorizon  string
		wantMomentum float64
		wantRisk     float64
	}{
		{name: "both markets", us: models.Float(1.0), pl: models.Float(2.0), horizon: "1m", wantHorizon: "1m", wantMomentum: 1.5, wantRisk: -0.75},
		{name: "one market", us: models.Float(-3.0), wantHorizon: "1w", wantMomentum: -3, wantRisk: -1.5},
		{name: "no data", wantHorizon: "1w", wantMomentum: 0, wantRisk: 0},
		{name: "rounded", us: models.Float(1.111), pl: models.Float(1.113), wantHorizon: "1w", wantMomentum: 1.11, wantRisk: -0.56},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := &models.Snapshot{Metrics: models.SnapshotMetrics{
				US: models.MarketMetric{ChangePct: tc.us},
				PL: models.MarketMetric{ChangePct: tc.pl},
			}}
			svc := NewMarketService(&stubSnapshots{snap: snap}, &stubQuotes{}, nil)

			out, err := svc.Signals(context.Background(), "US", tc.horizon)
			require.NoError(t, err)
			require.Equal(t, tc.wantHorizon, out.Horizon)
			require.Len(t, out.Signals, 3)
			require.Equal(t, "Momentum", out.Signals[0].Name)
			require.InDelta(t, tc.wantMomentum, out.Signals[0].Value, 1e-9)
			require.Equal(t, "Risk", out.Signals[1].Name)
			require.InDelta(t, tc.wantRisk, out.Signals[1].Value, 1e-9)
			require.Equal(t, "Macro Drift", out.Signals[2].Name)
			require.Equal(t, "Stable", out.Signals[2].Value)
		})
	}
}

func TestSignals_Errors(t *testing.T) {
	svc := NewMarketService(&stubSnapshots{err: upstream.ErrSourceUnavailable}, &stubQuotes{}, nil)

	_, err := svc.Signals(context.Background(), "XX", "")
	require.ErrorIs(t, err, ErrUnknownMarket)

	_, err = svc.Signals(context.Background(), "PL", "")
	require.ErrorIs(t, err, upstream.ErrSourceUnavailable)
}

func TestDossier_TableDriven(t *testing.T) {
	cases := []struct {
		name       string
		ticker     string
		quotes     *stubQuotes
		wantErr    error
		wantSymbol string
		assert     func(t *testing.T, ticker, signal, risk string, change *float64, confidence float64)
	}{
		{
			name:   "strong move",
			ticker: "x",
			quotes: &stubQuotes{series: models.BarSeries{
				{Date: "2024-01-01", Close: models.Float(10), Volume: models.Float(100)},
				{Date: "2024-01-02", Close: models.Float(11), Volume: models.Float(150)},
			}},
			wantSymbol: "x.us",
			assert: func(t *testing.T, ticker, signal, risk string, change *float64, confidence float64) {
				require.Equal(t, "X", ticker)
				require.Equal(t, metrics.SignalPositive, signal)
				require.Equal(t, metrics.RiskModerate, risk)
				require.InDelta(t, 10.0, *change, 0.01)
				require.Equal(t, 0.85, confidence)
			},
		},
		{
			name:   "single bar",
			ticker: "SPY.US",
			quotes: &stubQuotes{series: models.BarSeries{
				{Date: "2024-01-02", Close: models.Float(470)},
			}},
			wantSymbol: "spy.us",
			assert: func(t *testing.T, ticker, signal, risk string, change *float64, confidence float64) {
				require.Equal(t, "SPY.US", ticker)
				require.Equal(t, metrics.SignalNeutral, signal)
				require.Equal(t, metrics.RiskLow, risk)
				require.Nil(t, change)
				require.Equal(t, 0.55, confidence)
			},
		},
		{
			name:       "no rows",
			ticker:     "zzz",
			quotes:     &stubQuotes{},
			wantSymbol: "zzz.us",
			wantErr:    ErrNoData,
		},
		{
			name:       "upstream failure",
			ticker:     "aapl",
			quotes:     &stubQuotes{err: upstream.ErrSourceUnavailable},
			wantSymbol: "aapl.us",
			wantErr:    upstream.ErrSourceUnavailable,
		},
		{
			name:    "invalid ticker",
			ticker:  "a/b",
			quotes:  &stubQuotes{},
			wantErr: ErrInvalidTicker,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewMarketService(&stubSnapshots{}, tc.quotes, nil)
			out, err := svc.Dossier(context.Background(), tc.ticker)
			require.Equal(t, tc.wantSymbol, tc.quotes.symbol)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, out)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "12 weeks", out.Horizon)
			require.NotEmpty(t, out.Thesis)
			tc.assert(t, out.Ticker, out.Signal, out.RiskFlag, out.ChangePct, out.Confidence)
		})
	}
}

func TestDossier_LatestBar(t *testing.T) {
	quotes := &stubQuotes{series: models.BarSeries{
		{Date: "2024-01-01", Close: models.Float(10), Volume: models.Float(100)},
		{Date: "2024-01-02", Close: models.Float(11), Volume: models.Float(150)},
	}}
	svc := NewMarketService(&stubSnapshots{}, quotes, nil)

	out, err := svc.Dossier(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, 11.0, *out.Close)
	require.Equal(t, 150.0, *out.Volume)
	require.Equal(t, "2024-01-02", out.Date)
}

func TestCreateAlert(t *testing.T) {
	cases := []struct {
		name string
		in   json.RawMessage
		want string
	}{
		{name: "object", in: json.RawMessage(`{"ticker":"AAPL","above":200}`), want: `{"ticker":"AAPL","above":200}`},
		{name: "empty", in: nil, want: `{}`},
		{name: "invalid", in: json.RawMessage(`{oops`), want: `{}`},
	}

	svc := NewMarketService(&stubSnapshots{}, &stubQuotes{}, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := svc.CreateAlert(context.Background(), tc.in)
			require.Equal(t, "created", out.Status)
			require.Equal(t, tc.want, string(out.Rule))
		})
	}
}

func TestStaticPayloads(t *testing.T) {
	sources := []models.SourceDescriptor{{Name: "Stooq"}, {Name: "NBP"}}
	svc := NewMarketService(&stubSnapshots{err: errors.New("unused")}, &stubQuotes{}, sources)

	got := svc.Sources()
	require.Equal(t, sources, got.Sources)
	got.Sources[0].Name = "changed"
	require.Equal(t, "Stooq", svc.Sources().Sources[0].Name)

	p := svc.Portfolio()
	total := 0
	for _, w := range p.Allocation {
		total += w
	}
	require.Equal(t, 100, total)
	require.Equal(t, 0.7, p.Scenarios["base"])

	r := svc.WeeklyReport()
	require.Equal(t, "This week", r.Period)
	require.Len(t, r.Highlights, 3)
}

func TestThesis(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range []string{metrics.SignalPositive, metrics.SignalNegative} {
		for _, r := range []string{metrics.RiskLow, metrics.RiskModerate} {
			seen[thesis(s, r)] = true
		}
	}
	seen[thesis(metrics.SignalNeutral, metrics.RiskLow)] = true
	require.Len(t, seen, 5)
	require.True(t, strings.HasPrefix(thesis(metrics.SignalNeutral, metrics.RiskLow), "Not enough"))
}
