package database

import (
	"fmt"
	"time"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config 定義資料庫連線與連線池的配置
type Config struct {
	Driver   string `yaml:"driver"`   // "mysql" 或 "postgres"
	Host     string `yaml:"host"`     // 資料庫主機地址
	Port     int    `yaml:"port"`     // 資料庫埠號
	User     string `yaml:"user"`     // 使用者名稱
	Password string `yaml:"password"` // 密碼
	DBName   string `yaml:"dbname"`   // 資料庫名稱
	SSLMode  string `yaml:"sslmode"`  // 只有 postgres 使用

	// 連線池設定 (Connection Pool)
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	// GORM 設定
	LogLevel    string `yaml:"log_level"`    // "silent", "error", "warn", "info"
	AutoMigrate bool   `yaml:"auto_migrate"` // 啟動時建立/更新資料表
}

// SetDefaults 補全未設定的欄位
func (c *Config) SetDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMySQL
	}
	if c.Port == 0 {
		switch c.Driver {
		case DriverPostgres:
			c.Port = 5432
		default:
			c.Port = 3306
		}
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 100
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 30 * time.Minute
	}
}

// DSN (Data Source Name) 產生連線字串
//
//	mysql:    user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
//	postgres: host=... port=... user=... password=... dbname=... sslmode=...
func (c *Config) DSN() (string, error) {
	switch c.Driver {
	case DriverMySQL, "":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User,
			c.Password,
			c.Host,
			c.Port,
			c.DBName,
		), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host,
			c.Port,
			c.User,
			c.Password,
			c.DBName,
			c.SSLMode,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}
