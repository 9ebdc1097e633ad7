// Package snapshot builds and caches the market Snapshot shared by the
// dashboard endpoints.
package snapshot

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockaigent/internal/domain/models"
	"github.com/guttosm/stockaigent/internal/ingestion"
	"github.com/guttosm/stockaigent/internal/logger"
	"github.com/guttosm/stockaigent/internal/metrics"
)

// QuoteFetcher retrieves a daily quote series for one source symbol.
type QuoteFetcher interface {
	FetchQuoteSeries(ctx context.Context, symbol string) (models.BarSeries, error)
}

// FxFetcher retrieves a reference rate for one currency pair.
type FxFetcher interface {
	FetchFxRate(ctx context.Context, pair string) (models.FxQuote, error)
}

// BuilderConfig tunes a Builder.
type BuilderConfig struct {
	MoversLimit int // movers kept per market
	Parallel    int // concurrent fetches per mover batch
}

const (
	defaultMoversLimit = 5
	defaultParallel    = 4
	noDate             = "unavailable"
)

// Builder runs one refresh cycle: it fetches every upstream input
// concurrently and derives a new Snapshot from them.
type Builder struct {
	quotes   QuoteFetcher
	fx       FxFetcher
	universe *ingestion.Universe
	cfg      BuilderConfig
	now      func() time.Time
}

// NewBuilder creates a Builder for the given universe.
func NewBuilder(quotes QuoteFetcher, fx FxFetcher, universe *ingestion.Universe, cfg BuilderConfig) *Builder {
	if cfg.MoversLimit <= 0 {
		cfg.MoversLimit = defaultMoversLimit
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = defaultParallel
	}
	return &Builder{quotes: quotes, fx: fx, universe: universe, cfg: cfg, now: time.Now}
}

// Build fetches both benchmarks, the FX rate and both mover batches in
// parallel.
//
// Failure policy:
//   - a benchmark or FX failure fails the whole build (and cancels the
//     remaining fetches);
//   - a mover candidate failure only removes that symbol from the ranking.
func (b *Builder) Build(ctx context.Context) (*models.Snapshot, error) {
	us := b.universe.Markets[models.MarketUS]
	pl := b.universe.Markets[models.MarketPL]

	var (
		usSeries, plSeries models.BarSeries
		fx                 models.FxQuote
		mu                 sync.Mutex
		candidates         = make(map[models.Market][]models.FetchResult, len(models.Markets))
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := b.quotes.FetchQuoteSeries(gctx, us.Benchmark)
		if err != nil {
			return fmt.Errorf("US benchmark %s: %w", us.Benchmark, err)
		}
		usSeries = s
		return nil
	})
	g.Go(func() error {
		s, err := b.quotes.FetchQuoteSeries(gctx, pl.Benchmark)
		if err != nil {
			return fmt.Errorf("PL benchmark %s: %w", pl.Benchmark, err)
		}
		plSeries = s
		return nil
	})
	g.Go(func() error {
		q, err := b.fx.FetchFxRate(gctx, b.universe.FX.Pair)
		if err != nil {
			return fmt.Errorf("fx %s: %w", b.universe.FX.Pair, err)
		}
		fx = q
		return nil
	})
	for _, m := range models.Markets {
		symbols := b.universe.Markets[m].Movers
		g.Go(func() error {
			results := b.fetchBatch(gctx, m, symbols)
			mu.Lock()
			candidates[m] = results
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	usMetric := metrics.Summarize(us.Benchmark, usSeries)
	plMetric := metrics.Summarize(pl.Benchmark, plSeries)

	movers := make(map[models.Market][]models.Mover, len(models.Markets))
	for _, m := range models.Markets {
		movers[m] = metrics.TopMovers(candidates[m], b.cfg.MoversLimit)
	}

	return &models.Snapshot{
		UpdatedAt: updatedAt(usMetric, plMetric, fx),
		Metrics:   models.SnapshotMetrics{US: usMetric, PL: plMetric, FX: fx},
		TopMovers: movers,
		Sources:   slices.Clone(b.universe.Sources),
		BuiltAt:   b.now().UTC(),
	}, nil
}

// fetchBatch fetches every mover candidate of a market with bounded
// concurrency. Each symbol gets its own FetchResult, in input order.
func (b *Builder) fetchBatch(ctx context.Context, market models.Market, symbols []string) []models.FetchResult {
	results := make([]models.FetchResult, len(symbols))

	var g errgroup.Group
	g.SetLimit(b.cfg.Parallel)
	for i, sym := range symbols {
		g.Go(func() error {
			series, err := b.quotes.FetchQuoteSeries(ctx, sym)
			if err != nil {
				logger.Component("snapshot").Warn().Str("market", string(market)).Str("symbol", sym).Err(err).Msg("mover candidate skipped")
			}
			results[i] = models.FetchResult{Symbol: sym, Series: series, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// updatedAt picks the best available date token: the US benchmark's, then
// the PL benchmark's, then the FX effective date.
func updatedAt(us, pl models.MarketMetric, fx models.FxQuote) string {
	switch {
	case us.Date != "":
		return us.Date
	case pl.Date != "":
		return pl.Date
	case fx.Date != nil && *fx.Date != "":
		return *fx.Date
	default:
		return noDate
	}
}
