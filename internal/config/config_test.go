package config

import (
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/constants"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Catalog.DefaultToken != constants.DefaultProductToken {
		t.Fatalf("default token want %s got %s", constants.DefaultProductToken, cfg.Catalog.DefaultToken)
	}
	if cfg.Storage.Key != constants.CartStorageKey {
		t.Fatalf("storage key want %s got %s", constants.CartStorageKey, cfg.Storage.Key)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("storage driver want memory got %s", cfg.Storage.Driver)
	}
	if len(cfg.Catalog.MainAccessories) != len(constants.MainAccessoryIDs) {
		t.Fatalf("main accessories want %v got %v", constants.MainAccessoryIDs, cfg.Catalog.MainAccessories)
	}
	if cfg.Render.RefreshDelay() != constants.WidgetRefreshDelay {
		t.Fatalf("refresh delay want %s got %s", constants.WidgetRefreshDelay, cfg.Render.RefreshDelay())
	}
	if cfg.Render.Debounce {
		t.Fatalf("debounce should be off by default")
	}
}

func TestDecodeNormalizesBlankValues(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("catalog.default_token", "  ")
	v.Set("storage.driver", " Redis ")
	v.Set("storage.key", "")
	v.Set("render.open_cart_delay_ms", 0)
	v.Set("render.bridge_init_delay_ms", 750)

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Catalog.DefaultToken != constants.DefaultProductToken {
		t.Fatalf("blank default token should fall back, got %q", cfg.Catalog.DefaultToken)
	}
	if cfg.Storage.Driver != "redis" {
		t.Fatalf("driver should be normalized, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Key != constants.CartStorageKey {
		t.Fatalf("blank storage key should fall back, got %q", cfg.Storage.Key)
	}
	if cfg.Render.OpenCartDelay() != constants.CartOpenDelay {
		t.Fatalf("zero delay should fall back, got %s", cfg.Render.OpenCartDelay())
	}
	if cfg.Render.BridgeInitDelay() != 750*time.Millisecond {
		t.Fatalf("bridge delay want 750ms got %s", cfg.Render.BridgeInitDelay())
	}
}

func TestCatalogTimeoutFallback(t *testing.T) {
	if got := (CatalogConfig{}).Timeout(); got != 5*time.Second {
		t.Fatalf("timeout fallback want 5s got %s", got)
	}
	if got := (CatalogConfig{TimeoutMS: 1200}).Timeout(); got != 1200*time.Millisecond {
		t.Fatalf("timeout want 1.2s got %s", got)
	}
}

func TestCatalogRefreshInterval(t *testing.T) {
	if got := (CatalogConfig{}).RefreshInterval(); got != 0 {
		t.Fatalf("refresh should be disabled by default, got %s", got)
	}
	if got := (CatalogConfig{RefreshSeconds: 90}).RefreshInterval(); got != 90*time.Second {
		t.Fatalf("refresh interval want 90s got %s", got)
	}
}

func TestDefaultRateLimitAndCORS(t *testing.T) {
	cfg := Default()
	if cfg.RateLimit.Catalog.WindowSeconds != 60 || cfg.RateLimit.Catalog.MaxRequests != 120 {
		t.Fatalf("unexpected catalog rate limit: %+v", cfg.RateLimit.Catalog)
	}
	if cfg.CORS.AllowCredentials {
		t.Fatalf("credentials should be off by default")
	}
	if len(cfg.CORS.AllowedMethods) != 3 {
		t.Fatalf("default methods want GET/HEAD/OPTIONS got %v", cfg.CORS.AllowedMethods)
	}
}
