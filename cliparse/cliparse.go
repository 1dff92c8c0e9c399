package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port        int
	StoreDriver string // postgres, sqlite, or memory
	StoreDSN    string
	SearchURL   string
	SearchKey   string
	RateLimit   float64 // requests per second per client
	RateBurst   int
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("forkcast", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreDriver, "t", "", "Store driver (postgres, sqlite, or memory)")
	fs.StringVar(&cfg.StoreDSN, "d", "", "Store DSN")

	// Candidate sourcing (optional; fixtures are used when unset)
	fs.StringVar(&cfg.SearchURL, "search-url", "", "Restaurant search API URL")
	fs.StringVar(&cfg.SearchKey, "search-key", "", "Restaurant search API key (prefer env)")

	// Throttling
	fs.Float64Var(&cfg.RateLimit, "rate", 0, "Per-client requests per second")
	fs.IntVar(&cfg.RateBurst, "burst", 0, "Per-client burst size")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4117 // default
		}
	}

	if cfg.StoreDriver == "" {
		cfg.StoreDriver = os.Getenv("STORE_DRIVER")
		if cfg.StoreDriver == "" {
			cfg.StoreDriver = "sqlite"
		}
	}
	if cfg.StoreDriver != "postgres" && cfg.StoreDriver != "sqlite" && cfg.StoreDriver != "memory" {
		return Config{}, errors.New("store driver must be postgres, sqlite, or memory")
	}

	if cfg.StoreDSN == "" {
		cfg.StoreDSN = os.Getenv("STORE_DSN")
	}
	if cfg.StoreDSN == "" {
		switch cfg.StoreDriver {
		case "sqlite":
			cfg.StoreDSN = "forkcast.db"
		case "postgres":
			return Config{}, errors.New("store DSN required for postgres (use -d or STORE_DSN env)")
		}
	}

	if cfg.SearchURL == "" {
		cfg.SearchURL = os.Getenv("SEARCH_URL")
	}
	if cfg.SearchKey == "" {
		cfg.SearchKey = os.Getenv("SEARCH_API_KEY")
	}

	if cfg.RateLimit == 0 {
		cfg.RateLimit = 5
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 30
	}

	return cfg, nil
}
