package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kitchen-ledger/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the configured database and applies basic tuning.
// sqlite is the default; postgres and mysql read their DSN from config.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// connection pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if driverName(cfg) == "sqlite" {
		// foreign_keys is also set per connection through the DSN
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
		_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	}

	return db, nil
}

func driverName(cfg config.DatabaseConfig) string {
	d := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if d == "" {
		return "sqlite"
	}
	return d
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch driverName(cfg) {
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("database path is empty")
		}
		// ensure parent directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres dsn is empty")
		}
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("mysql dsn is empty")
		}
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN turns on foreign keys for every pooled connection; cascades
// on recipe requirements and purchases depend on it.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}
