package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Client 封裝 GORM DB 實例
type Client struct {
	db *gorm.DB
}

// NewClient 依 cfg.Driver 建立資料庫客戶端，連線失敗時會重試
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	maxRetries := 10
	retryInterval := 2 * time.Second

	var client *Client
	for i := 0; i < maxRetries; i++ {
		client, err = Open(dialector, cfg)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			log.Warn("database connect failed, retrying",
				zap.Int("attempt", i+1),
				zap.Int("max_attempts", maxRetries),
				zap.Duration("retry_in", retryInterval),
				zap.Error(err))
			time.Sleep(retryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s after %d attempts: %w", cfg.Driver, maxRetries, err)
	}
	return client, nil
}

// Dialector 回傳 cfg.Driver 對應的 GORM Dialector
func Dialector(cfg Config) (gorm.Dialector, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return mysql.Open(dsn), nil
	}
}

// Open 以指定的 Dialector 開啟連線並設定連線池
func Open(dialector gorm.Dialector, cfg Config) (*Client, error) {
	gormConfig := &gorm.Config{
		// 預設跳過事務模式，需要原子性的操作自行開 Transaction
		SkipDefaultTransaction: true,
		Logger:                 newLogger(cfg.LogLevel),
	}
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.db: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s ping failed: %w", dialector.Name(), err)
	}
	return &Client{db: db}, nil
}

// DB 回傳底層的 *gorm.DB 實例
func (c *Client) DB() *gorm.DB {
	return c.db
}

// Close 關閉資料庫連線
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newLogger 根據配置建立 GORM Logger
func newLogger(level string) logger.Interface {
	var logLevel logger.LogLevel
	switch level {
	case "info":
		logLevel = logger.Info
	case "warn":
		logLevel = logger.Warn
	case "error":
		logLevel = logger.Error
	case "silent":
		logLevel = logger.Silent
	default:
		logLevel = logger.Error // 預設只記錄錯誤
	}

	return logger.Default.LogMode(logLevel)
}
