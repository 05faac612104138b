package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")

	if cfg.Server.Address != ":8787" {
		t.Fatalf("unexpected default address %q", cfg.Server.Address)
	}
	if cfg.Server.ClassifyMaxBytes != 10<<20 {
		t.Fatalf("unexpected classify limit %d", cfg.Server.ClassifyMaxBytes)
	}
	if cfg.Server.RelayMaxBytes != 20<<20 {
		t.Fatalf("unexpected relay limit %d", cfg.Server.RelayMaxBytes)
	}
	if cfg.Server.IdleTimeout != 30*time.Minute || cfg.Server.MaxSessionTTL != 8*time.Hour {
		t.Fatalf("unexpected session timeouts: %+v", cfg.Server)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Fatalf("unexpected default provider %q", cfg.LLM.Provider)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("unexpected default storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Swecha.BaseURL != "https://api.corpus.swecha.org/api/v1" {
		t.Fatalf("unexpected swecha base url %q", cfg.Swecha.BaseURL)
	}
	if cfg.Search.MinRadiusKm != 1 || cfg.Search.MaxRadiusKm != 100 {
		t.Fatalf("unexpected radius bounds: %+v", cfg.Search)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ARTYATRA_SERVER_ADDRESS", ":9999")
	t.Setenv("ARTYATRA_LLM_PROVIDER", "openai")

	cfg := LoadConfig("")
	if cfg.Server.Address != ":9999" {
		t.Fatalf("env override not applied: %q", cfg.Server.Address)
	}
	if cfg.LLM.Provider != "openai" {
		t.Fatalf("env override not applied: %q", cfg.LLM.Provider)
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", User: "u", Password: "p", DBName: "artyatra"}
	dsn, err := p.DSN()
	if err != nil {
		t.Fatalf("DSN: %v", err)
	}
	if dsn != "postgres://u:p@db:5432/artyatra?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", dsn)
	}

	p = PostgresConfig{URL: "postgres://explicit"}
	dsn, _ = p.DSN()
	if dsn != "postgres://explicit" {
		t.Fatalf("url must win: %q", dsn)
	}

	if _, err := (PostgresConfig{}).DSN(); err == nil {
		t.Fatal("expected error for empty config")
	}
}

func TestRedisValidate(t *testing.T) {
	if err := (RedisConfig{}).Validate(); err != nil {
		t.Fatalf("disabled redis must validate: %v", err)
	}
	if err := (RedisConfig{Enabled: true}).Validate(); err == nil {
		t.Fatal("enabled redis without host must fail")
	}
	if err := (RedisConfig{Enabled: true, Host: "r", Port: "6379"}).Validate(); err != nil {
		t.Fatalf("valid redis config rejected: %v", err)
	}
}
