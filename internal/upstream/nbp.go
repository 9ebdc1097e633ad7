package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/guttosm/stockaigent/internal/domain/models"
)

// DefaultNBPURL is the National Bank of Poland public API.
const DefaultNBPURL = "https://api.nbp.pl"

// NBPClient fetches table A mid rates from the NBP API.
// NBP quotes every currency against PLN, so pairs must be "XXX/PLN".
type NBPClient struct {
	opts options
}

// NewNBPClient creates an NBP client.
func NewNBPClient(opts ...Option) *NBPClient {
	return &NBPClient{opts: newOptions(DefaultNBPURL, opts)}
}

type nbpRates struct {
	Rates []struct {
		No            string   `json:"no"`
		EffectiveDate string   `json:"effectiveDate"`
		Mid           *float64 `json:"mid"`
	} `json:"rates"`
}

// FetchFxRate returns the latest mid rate for pair. Missing data (404 from
// NBP, an empty rates array or an undecodable body) is a quote with nil
// rate and date, not an error; only transport failures and other non-2xx
// statuses are ErrSourceUnavailable.
func (c *NBPClient) FetchFxRate(ctx context.Context, pair string) (models.FxQuote, error) {
	quote := models.FxQuote{Pair: pair}

	code, err := baseCurrency(pair)
	if err != nil {
		return quote, err
	}
	u := fmt.Sprintf("%s/api/exchangerates/rates/A/%s/?format=json", c.opts.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return quote, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := get(req, c.opts.httpClient)
	if err != nil {
		return quote, fmt.Errorf("nbp %s: %w", pair, err)
	}
	if status == http.StatusNotFound {
		return quote, nil
	}
	if !isSuccess(status) {
		return quote, fmt.Errorf("nbp %s: %w: status %d", pair, ErrSourceUnavailable, status)
	}

	var payload nbpRates
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Rates) == 0 {
		return quote, nil
	}
	first := payload.Rates[0]
	quote.Rate = first.Mid
	if first.EffectiveDate != "" {
		d := first.EffectiveDate
		quote.Date = &d
	}
	return quote, nil
}

// ValidatePair reports whether NBP publishes a rate for pair. Only
// "XXX/PLN" pairs with a three-letter ISO base code are accepted.
func ValidatePair(pair string) error {
	_, err := baseCurrency(pair)
	return err
}

// baseCurrency extracts the lower-case base currency code from "USD/PLN".
func baseCurrency(pair string) (string, error) {
	base, quote, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(pair)), "/")
	if !ok || quote != "PLN" || !isCurrencyCode(base) {
		return "", fmt.Errorf("unsupported fx pair %q: NBP quotes XXX/PLN only", pair)
	}
	return strings.ToLower(base), nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
