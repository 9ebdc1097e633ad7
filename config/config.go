package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the upstream quote/FX providers and the snapshot cache.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	STOOQ_BASE_URL=https://stooq.com
//	NBP_BASE_URL=https://api.nbp.pl
//	CACHE_TTL=10m
//	WARM_SCHEDULE=@every 9m
//	CORS_ALLOW_ORIGINS=https://dashboard.example.com
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Upstream UpstreamConfig // Stooq and NBP providers
	Cache    CacheConfig    // Snapshot cache and warmer
}

// ServerConfig holds HTTP server settings.
//
// Fields:
//   - Port: TCP port to listen on (SERVER_PORT, falls back to PORT).
//   - RequestTimeout: per-request deadline applied by the router. It may be
//     shorter than Cache.RefreshTimeout: a request that times out before the
//     first snapshot exists gets 503 while the refresh keeps running, and
//     later requests are served from its result.
//   - AllowOrigins: CORS origins; "*" allows any.
//   - RateLimitPerMinute: requests per client IP per minute; 0 disables.
type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	AllowOrigins       []string
	RateLimitPerMinute int
}

// UpstreamConfig describes the market data providers.
//
// Fields:
//   - StooqBaseURL / NBPBaseURL: provider endpoints.
//   - Timeout: HTTP client timeout for a single upstream call.
//   - FXPair: overrides the pair from the market universe when set.
//   - UniverseFile: YAML market universe; empty uses the embedded one.
type UpstreamConfig struct {
	StooqBaseURL string
	NBPBaseURL   string
	Timeout      time.Duration
	FXPair       string
	UniverseFile string
}

// CacheConfig controls the snapshot cache.
//
// Fields:
//   - TTL: how long a snapshot is served before a refresh.
//   - RefreshTimeout: upper bound for one refresh cycle.
//   - MoversLimit: number of top movers kept per market.
//   - MoversParallel: concurrent mover fetches per market.
//   - WarmSchedule: cron spec for background refreshes; empty disables.
type CacheConfig struct {
	TTL            time.Duration
	RefreshTimeout time.Duration
	MoversLimit    int
	MoversParallel int
	WarmSchedule   string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "15s")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	viper.SetDefault("STOOQ_BASE_URL", "https://stooq.com")
	viper.SetDefault("NBP_BASE_URL", "https://api.nbp.pl")
	viper.SetDefault("UPSTREAM_TIMEOUT", "10s")
	viper.SetDefault("FX_PAIR", "")
	viper.SetDefault("UNIVERSE_FILE", "")

	viper.SetDefault("CACHE_TTL", "10m")
	viper.SetDefault("REFRESH_TIMEOUT", "30s")
	viper.SetDefault("MOVERS_LIMIT", 5)
	viper.SetDefault("MOVERS_PARALLEL", 4)
	viper.SetDefault("WARM_SCHEDULE", "@every 9m")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	port := viper.GetString("SERVER_PORT")
	if port == "" {
		port = viper.GetString("PORT")
	}

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port:               port,
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			AllowOrigins:       splitList(viper.GetString("CORS_ALLOW_ORIGINS")),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Upstream: UpstreamConfig{
			StooqBaseURL: strings.TrimRight(viper.GetString("STOOQ_BASE_URL"), "/"),
			NBPBaseURL:   strings.TrimRight(viper.GetString("NBP_BASE_URL"), "/"),
			Timeout:      viper.GetDuration("UPSTREAM_TIMEOUT"),
			FXPair:       strings.ToUpper(strings.TrimSpace(viper.GetString("FX_PAIR"))),
			UniverseFile: viper.GetString("UNIVERSE_FILE"),
		},
		Cache: CacheConfig{
			TTL:            viper.GetDuration("CACHE_TTL"),
			RefreshTimeout: viper.GetDuration("REFRESH_TIMEOUT"),
			MoversLimit:    viper.GetInt("MOVERS_LIMIT"),
			MoversParallel: viper.GetInt("MOVERS_PARALLEL"),
			WarmSchedule:   strings.TrimSpace(viper.GetString("WARM_SCHEDULE")),
		},
	}

	// Validate critical fields
	validateConfig()
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing or invalid ones in a slice.
//   - If any are found, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	if bad := invalidKeys(AppConfig); len(bad) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", bad)
	}
}

func invalidKeys(cfg Config) []string {
	var bad []string

	if cfg.Server.Port == "" {
		bad = append(bad, "SERVER_PORT")
	}
	if cfg.Upstream.StooqBaseURL == "" {
		bad = append(bad, "STOOQ_BASE_URL")
	}
	if cfg.Upstream.NBPBaseURL == "" {
		bad = append(bad, "NBP_BASE_URL")
	}
	if cfg.Upstream.Timeout <= 0 {
		bad = append(bad, "UPSTREAM_TIMEOUT")
	}
	if cfg.Cache.TTL <= 0 {
		bad = append(bad, "CACHE_TTL")
	}
	if cfg.Cache.RefreshTimeout <= 0 {
		bad = append(bad, "REFRESH_TIMEOUT")
	}
	if cfg.Cache.MoversLimit < 0 {
		bad = append(bad, "MOVERS_LIMIT")
	}
	return bad
}
