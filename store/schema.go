// Package store is the database sink: schema bootstrap via GORM, the
// wire-level COPY bulk loader and parameterized indicator insert via pgx,
// and the three-phase parallel load protocol of §4.7.
package store

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

// OpenGORM dials dsn and configures the connection pool the way a
// long-running ingest process should: bounded, recycled connections rather
// than the defaults.
func OpenGORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// InitSchema creates the trades and indicators tables and their indexes if
// they do not already exist. Idempotent: safe to call on every startup.
func InitSchema(db *gorm.DB, log *logrus.Logger) error {
	if err := db.AutoMigrate(&models.Trade{}, &models.IndicatorRow{}); err != nil {
		return fmt.Errorf("store: migrate schema: %w", err)
	}

	if err := db.Exec(`
		ALTER TABLE trades
		ADD CONSTRAINT IF NOT EXISTS chk_trades_price CHECK (price > 0),
		ADD CONSTRAINT IF NOT EXISTS chk_trades_volume CHECK (volume > 0),
		ADD CONSTRAINT IF NOT EXISTS chk_trades_side CHECK (side IN ('B','S','N')),
		ADD CONSTRAINT IF NOT EXISTS chk_trades_type CHECK (type IN ('M','L','I'))
	`).Error; err != nil {
		log.WithError(err).Warn("store: could not add trades check constraints (may already exist)")
	}

	if err := db.Exec(`
		ALTER TABLE indicators
		ADD CONSTRAINT IF NOT EXISTS chk_indicators_rsi CHECK (rsi >= 0 AND rsi <= 100),
		ADD CONSTRAINT IF NOT EXISTS chk_indicators_vwap CHECK (vwap > 0),
		ADD CONSTRAINT IF NOT EXISTS chk_indicators_period CHECK (period > 0)
	`).Error; err != nil {
		log.WithError(err).Warn("store: could not add indicators check constraints (may already exist)")
	}

	log.Info("store: schema ready")
	return nil
}
