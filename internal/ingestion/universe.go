package ingestion

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/stockaigent/internal/domain/models"
)

//go:embed markets.yaml
var defaultUniverse []byte

// MarketUniverse lists the symbols fetched for one market.
type MarketUniverse struct {
	Benchmark string   `yaml:"benchmark"`
	Movers    []string `yaml:"movers"`
}

// Universe is the set of symbols, FX pair and source registry that make up
// a snapshot. Symbols are stored already normalized.
type Universe struct {
	Markets map[models.Market]MarketUniverse `yaml:"markets"`
	FX      struct {
		Pair string `yaml:"pair"`
	} `yaml:"fx"`
	Sources []models.SourceDescriptor `yaml:"sources"`
}

// LoadUniverse reads the universe from path, or the embedded default when
// path is empty.
func LoadUniverse(path string) (*Universe, error) {
	data := defaultUniverse
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read universe: %w", err)
		}
		data = b
	}
	return ParseUniverse(data)
}

// ParseUniverse decodes and validates a universe document.
func ParseUniverse(data []byte) (*Universe, error) {
	var u Universe
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse universe: %w", err)
	}

	normalized := make(map[models.Market]MarketUniverse, len(models.Markets))
	for _, m := range models.Markets {
		mu, ok := u.Markets[m]
		if !ok || strings.TrimSpace(mu.Benchmark) == "" {
			return nil, fmt.Errorf("universe: market %s has no benchmark", m)
		}
		out := MarketUniverse{Benchmark: NormalizeSymbol(m, mu.Benchmark)}
		for _, s := range mu.Movers {
			if sym := NormalizeSymbol(m, s); sym != "" {
				out.Movers = append(out.Movers, sym)
			}
		}
		normalized[m] = out
	}
	u.Markets = normalized

	u.FX.Pair = strings.ToUpper(strings.TrimSpace(u.FX.Pair))
	if u.FX.Pair == "" {
		return nil, fmt.Errorf("universe: fx pair is required")
	}
	return &u, nil
}
