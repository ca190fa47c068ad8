package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JoeShih716/go-bank-ledger/pkg/database"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
ledger:
  backend: memory
  wal_path: /tmp/ledger.wal
database:
  driver: postgres
  host: db
  user: bank
  dbname: bank
  conn_max_lifetime: 5m
grpc:
  addr: ":6000"
log:
  level: debug
  development: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Ledger.Backend != BackendMemory || cfg.Ledger.WALPath != "/tmp/ledger.wal" {
		t.Fatalf("ledger = %+v", cfg.Ledger)
	}
	if cfg.Database.Driver != database.DriverPostgres || cfg.Database.Port != 5432 || cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.GRPC.Addr != ":6000" || cfg.HTTP.Addr != ":8080" {
		t.Fatalf("listen = %+v %+v", cfg.GRPC, cfg.HTTP)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Fatalf("log = %+v", cfg.Log)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  host: from-file
  port: 3306
`)
	t.Setenv("LEDGER_DB_HOST", "from-env")
	t.Setenv("LEDGER_DB_PORT", "3307")
	t.Setenv("LEDGER_DB_PASSWORD", "secret")
	t.Setenv("LEDGER_BACKEND", "sql")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.Host != "from-env" || cfg.Database.Port != 3307 || cfg.Database.Password != "secret" {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.Database.Driver != database.DriverMySQL {
		t.Fatalf("driver default = %q", cfg.Database.Driver)
	}

	t.Setenv("LEDGER_DB_PORT", "not-a-port")
	if _, err := Load(path); err == nil {
		t.Fatal("invalid port accepted")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "ledger:\n  backend: redis\n")
	if _, err := Load(path); err == nil {
		t.Fatal("unknown backend accepted")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
