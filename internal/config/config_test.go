package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("STORE_PROJECT_ID", "blog-test")
	os.Setenv("STORE_DATASET", "staging")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.Store.ProjectID != "blog-test" || cfg.Store.Dataset != "staging" {
		t.Fatalf("store config not read from env: %+v", cfg.Store)
	}
	if cfg.Store.CacheMode != "cached" {
		t.Fatalf("expected default cache mode, got %q", cfg.Store.CacheMode)
	}
	if cfg.Server.Port == "" {
		t.Fatalf("server port default missing")
	}
}
