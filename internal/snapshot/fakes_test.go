package snapshot

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/stockaigent/internal/domain/models"
	"github.com/guttosm/stockaigent/internal/ingestion"
	"github.com/guttosm/stockaigent/internal/upstream"
)

// fakeQuotes serves canned series per symbol; unknown symbols fail.
type fakeQuotes struct {
	series map[string]models.BarSeries
	fail   map[string]bool
	calls  atomic.Int32
}

func (f *fakeQuotes) FetchQuoteSeries(_ context.Context, symbol string) (models.BarSeries, error) {
	f.calls.Add(1)
	if f.fail[symbol] {
		return nil, fmt.Errorf("%s: %w", symbol, upstream.ErrSourceUnavailable)
	}
	s, ok := f.series[symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w: status 404", symbol, upstream.ErrSourceUnavailable)
	}
	return s, nil
}

type fakeFx struct {
	quote models.FxQuote
	err   error
}

func (f *fakeFx) FetchFxRate(_ context.Context, pair string) (models.FxQuote, error) {
	if f.err != nil {
		return models.FxQuote{Pair: pair}, f.err
	}
	q := f.quote
	q.Pair = pair
	return q, nil
}

// closes builds a series with dates d1..dn.
func closes(vals ...float64) models.BarSeries {
	s := make(models.BarSeries, 0, len(vals))
	for i, v := range vals {
		s = append(s, models.Bar{Date: "2024-01-0" + strconv.Itoa(i+1), Close: models.Float(v)})
	}
	return s
}

func testUniverse() *ingestion.Universe {
	u := &ingestion.Universe{
		Markets: map[models.Market]ingestion.MarketUniverse{
			models.MarketUS: {Benchmark: "^spx", Movers: []string{"aapl.us", "msft.us", "nvda.us"}},
			models.MarketPL: {Benchmark: "wig20", Movers: []string{"pko", "cdr"}},
		},
		Sources: []models.SourceDescriptor{{Name: "Stooq", URL: "https://stooq.com", Note: "quotes"}},
	}
	u.FX.Pair = "USD/PLN"
	return u
}

// stubBuilder returns queued results and counts calls.
type stubBuilder struct {
	mu      sync.Mutex
	calls   int
	err     error
	block   chan struct{} // when set, Build waits on it
	started chan struct{}
}

func (b *stubBuilder) Build(ctx context.Context) (*models.Snapshot, error) {
	b.mu.Lock()
	b.calls++
	n := b.calls
	err := b.err
	block := b.block
	started := b.started
	b.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &models.Snapshot{UpdatedAt: "build-" + strconv.Itoa(n)}, nil
}

func (b *stubBuilder) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *stubBuilder) SetErr(err error) {
	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

// clock is a manually advanced time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
