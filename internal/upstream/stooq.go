package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/guttosm/stockaigent/internal/domain/models"
	"github.com/guttosm/stockaigent/internal/ingestion"
)

// DefaultStooqURL is the public Stooq endpoint.
const DefaultStooqURL = "https://stooq.com"

// StooqClient fetches daily quote series as CSV from Stooq.
type StooqClient struct {
	opts options
}

// NewStooqClient creates a Stooq client.
func NewStooqClient(opts ...Option) *StooqClient {
	return &StooqClient{opts: newOptions(DefaultStooqURL, opts)}
}

// FetchQuoteSeries downloads the daily history for symbol (already in Stooq
// form, e.g. "spy.us") and parses it. A non-2xx answer or a transport error
// is ErrSourceUnavailable; an unparseable body is an empty series.
func (c *StooqClient) FetchQuoteSeries(ctx context.Context, symbol string) (models.BarSeries, error) {
	q := url.Values{}
	q.Set("s", symbol)
	q.Set("i", "d")
	u := fmt.Sprintf("%s/q/d/l/?%s", c.opts.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	status, body, err := get(req, c.opts.httpClient)
	if err != nil {
		return nil, fmt.Errorf("stooq %s: %w", symbol, err)
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("stooq %s: %w: status %d", symbol, ErrSourceUnavailable, status)
	}
	return ingestion.ParseQuotes(string(body)), nil
}
