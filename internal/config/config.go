// Package config 讀取 YAML 設定檔，並以環境變數 (可來自 .env) 覆寫。
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-bank-ledger/pkg/database"
)

const (
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

type Config struct {
	Ledger   LedgerConfig    `yaml:"ledger"`
	Database database.Config `yaml:"database"`
	GRPC     ListenConfig    `yaml:"grpc"`
	HTTP     ListenConfig    `yaml:"http"`
	Log      LogConfig       `yaml:"log"`
}

type LedgerConfig struct {
	Backend string `yaml:"backend"`
	WALPath string `yaml:"wal_path"`
}

type ListenConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load 讀取設定檔
// 若工作目錄有 .env 會先載入；LEDGER_* 環境變數優先於設定檔
func Load(path string) (Config, error) {
	// .env 不存在時直接使用系統環境變數
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, cfg.validate()
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setString("LEDGER_BACKEND", &c.Ledger.Backend)
	setString("LEDGER_WAL_PATH", &c.Ledger.WALPath)
	setString("LEDGER_DB_DRIVER", &c.Database.Driver)
	setString("LEDGER_DB_HOST", &c.Database.Host)
	setString("LEDGER_DB_USER", &c.Database.User)
	setString("LEDGER_DB_PASSWORD", &c.Database.Password)
	setString("LEDGER_DB_NAME", &c.Database.DBName)
	setString("LEDGER_GRPC_ADDR", &c.GRPC.Addr)
	setString("LEDGER_HTTP_ADDR", &c.HTTP.Addr)
	setString("LEDGER_LOG_LEVEL", &c.Log.Level)

	if v, ok := os.LookupEnv("LEDGER_DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEDGER_DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Ledger.Backend == "" {
		c.Ledger.Backend = BackendSQL
	}
	if c.Ledger.WALPath == "" {
		c.Ledger.WALPath = "wal.log"
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":50051"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Database.SetDefaults()
}

func (c *Config) validate() error {
	switch c.Ledger.Backend {
	case BackendSQL, BackendMemory:
	default:
		return fmt.Errorf("unknown ledger backend %q", c.Ledger.Backend)
	}
	if c.Ledger.Backend == BackendSQL {
		if _, err := c.Database.DSN(); err != nil {
			return err
		}
	}
	return nil
}
