package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotelfood/entity"
)

// ConnectionDB opens the database named by DB_DRIVER / DB_SOURCE.
func ConnectionDB(cfg *Config, log *logrus.Logger) (*gorm.DB, error) {
	return Open(cfg.DBDriver, cfg.DBSource, log)
}

func Open(driver, source string, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "sqlite", "":
		dialector = sqlite.Open(SQLiteDSN(source))
	case "postgres", "postgresql":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	gcfg := &gorm.Config{}
	if log != nil {
		gcfg.Logger = gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	database, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return database, nil
}

// SQLiteDSN turns foreign keys on so OnDelete:CASCADE constraints fire.
func SQLiteDSN(source string) string {
	if strings.Contains(source, "_foreign_keys") || strings.Contains(source, "_fk=") {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_foreign_keys=on"
}

// SetupDatabase migrates the schema.
func SetupDatabase(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.Category{},
		&entity.MenuItem{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Staff{},
	)
}
