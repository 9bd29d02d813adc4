package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	cfg := LoadConfig("")

	if cfg.Server.Address != ":8080" {
		t.Errorf("unexpected server address %q", cfg.Server.Address)
	}
	if cfg.LLM.Provider != "gemini" || cfg.LLM.Model != "gemini-2.0-flash-exp" {
		t.Errorf("unexpected llm defaults: %+v", cfg.LLM)
	}
	if cfg.Vector.IndexName != "hr-vector-search-index" || cfg.Vector.Dimension != 768 {
		t.Errorf("unexpected vector defaults: %+v", cfg.Vector)
	}
	if cfg.Redis.TTL != 24*time.Hour || cfg.Redis.KeyPrefix != "chat_history:" {
		t.Errorf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Ingest.ChunkSize != 1000 || cfg.Ingest.ChunkOverlap != 200 {
		t.Errorf("unexpected ingest defaults: %+v", cfg.Ingest)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"server": {"address": ":9090"},
		"llm": {"provider": "openai", "api_key": "sk-test", "model": "gpt-4o-mini"},
		"redis": {"host": "redis.internal", "port": "6380"}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := LoadConfig(path)
	if cfg.Server.Address != ":9090" {
		t.Errorf("unexpected server address %q", cfg.Server.Address)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.APIKey != "sk-test" {
		t.Errorf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.Redis.Addr() != "redis.internal:6380" {
		t.Errorf("unexpected redis addr %q", cfg.Redis.Addr())
	}
	// values absent from the file keep their defaults
	if cfg.Vector.Dimension != 768 {
		t.Errorf("unexpected vector dimension %d", cfg.Vector.Dimension)
	}
}

func TestValidate(t *testing.T) {
	if err := (LLMConfig{}).Validate(); err == nil {
		t.Error("expected error for missing llm api key")
	}
	if err := (LLMConfig{APIKey: "k"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := (VectorConfig{APIKey: "k", IndexName: "idx"}).Validate(); err == nil {
		t.Error("expected error for zero dimension")
	}
	if err := (VectorConfig{APIKey: "k", IndexName: "idx", Dimension: 768}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := (RedisConfig{Host: "localhost"}).Validate(); err == nil {
		t.Error("expected error for missing redis port")
	}
	if err := (RedisConfig{Host: "localhost", Port: "6379"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
