package cliparse

import (
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "STORE_DRIVER", "STORE_DSN", "SEARCH_URL", "SEARCH_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 4117 {
		t.Errorf("Expected default port 4117, got %d", cfg.Port)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("Expected default driver sqlite, got %s", cfg.StoreDriver)
	}
	if cfg.StoreDSN != "forkcast.db" {
		t.Errorf("Expected default sqlite DSN, got %s", cfg.StoreDSN)
	}
	if cfg.RateLimit != 5 || cfg.RateBurst != 30 {
		t.Errorf("Unexpected rate defaults: %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if cfg.SearchURL != "" {
		t.Errorf("Expected no search URL by default, got %s", cfg.SearchURL)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := ParseFlags([]string{"-p", "8080", "-t", "sqlite", "-d", "test.db"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Flag did not override env: %d", cfg.Port)
	}
	if cfg.StoreDriver != "sqlite" || cfg.StoreDSN != "test.db" {
		t.Errorf("Unexpected store config: %s %s", cfg.StoreDriver, cfg.StoreDSN)
	}
}

func TestEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SEARCH_URL", "https://api.example.com/v3/businesses/search")
	t.Setenv("SEARCH_API_KEY", "secret")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8081 || cfg.StoreDriver != "memory" {
		t.Errorf("Env not applied: %+v", cfg)
	}
	if cfg.SearchURL == "" || cfg.SearchKey != "secret" {
		t.Errorf("Search env not applied: %+v", cfg)
	}
}

func TestInvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}

func TestInvalidDriver(t *testing.T) {
	clearEnv(t)

	if _, err := ParseFlags([]string{"-t", "mongodb"}); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}

func TestPostgresRequiresDSN(t *testing.T) {
	clearEnv(t)

	if _, err := ParseFlags([]string{"-t", "postgres"}); err == nil {
		t.Error("Expected error for postgres without DSN")
	}

	cfg, err := ParseFlags([]string{"-t", "postgres", "-d", "postgres://localhost/forkcast"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.StoreDSN != "postgres://localhost/forkcast" {
		t.Errorf("Unexpected DSN: %s", cfg.StoreDSN)
	}
}
