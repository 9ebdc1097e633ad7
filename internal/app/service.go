package app

import (
	"fmt"

	"github.com/guttosm/stockaigent/config"
	"github.com/guttosm/stockaigent/internal/ingestion"
	"github.com/guttosm/stockaigent/internal/service"
	"github.com/guttosm/stockaigent/internal/snapshot"
	"github.com/guttosm/stockaigent/internal/storage"
	"github.com/guttosm/stockaigent/internal/upstream"
)

// universeLoader is an indirection for unit testing; defaults to ingestion.LoadUniverse
var universeLoader = ingestion.LoadUniverse

// buildService assembles the market data pipeline:
// upstream clients → snapshot builder → snapshot cache → MarketService.
//
// Returns:
//   - service.MarketService: the query layer used by the HTTP handlers.
//   - *snapshot.Cache: the shared cache, needed for readiness and warming.
//   - error: if the market universe cannot be loaded or its FX pair (after the
//     FX_PAIR override) is not published by NBP.
func buildService(cfg config.Config) (service.MarketService, *snapshot.Cache, error) {
	universe, err := universeLoader(cfg.Upstream.UniverseFile)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Upstream.FXPair != "" {
		universe.FX.Pair = cfg.Upstream.FXPair
	}
	// Checked here so a pair NBP does not publish fails startup instead of
	// every refresh.
	if err := upstream.ValidatePair(universe.FX.Pair); err != nil {
		return nil, nil, fmt.Errorf("fx pair: %w", err)
	}

	httpClient := upstream.NewHTTPClient(cfg.Upstream.Timeout)
	quotes := upstream.NewStooqClient(
		upstream.WithBaseURL(cfg.Upstream.StooqBaseURL),
		upstream.WithHTTPClient(httpClient),
	)
	fx := upstream.NewNBPClient(
		upstream.WithBaseURL(cfg.Upstream.NBPBaseURL),
		upstream.WithHTTPClient(httpClient),
	)

	builder := snapshot.NewBuilder(quotes, fx, universe, snapshot.BuilderConfig{
		MoversLimit: cfg.Cache.MoversLimit,
		Parallel:    cfg.Cache.MoversParallel,
	})
	cache := snapshot.NewCache(builder, storage.NewMemorySnapshotStore(), snapshot.CacheConfig{
		TTL:            cfg.Cache.TTL,
		RefreshTimeout: cfg.Cache.RefreshTimeout,
	})

	return service.NewMarketService(cache, quotes, universe.Sources), cache, nil
}
