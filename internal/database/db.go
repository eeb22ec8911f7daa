package database

import (
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database. URLs beginning with postgres:// use the
// postgres driver; everything else is treated as a sqlite file path.
func Connect(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		db  *gorm.DB
		err error
	)
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		db, err = gorm.Open(postgres.Open(databaseURL), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(databaseURL), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate runs schema migrations for all durable records.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Incident{},
		&TimelineEvent{},
		&HistoryEntry{},
		&RollingSummary{},
		&APIKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedAPIKeys replaces the stored API keys with bcrypt hashes of the
// given plaintext keys. An empty slice clears the table and disables
// API-key authentication.
func SeedAPIKeys(db *gorm.DB, keys []string) error {
	if err := db.Where("1 = 1").Delete(&APIKey{}).Error; err != nil {
		return fmt.Errorf("failed to clear api keys: %w", err)
	}

	for i, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash api key: %w", err)
		}
		record := &APIKey{
			Name:    fmt.Sprintf("key-%d", i+1),
			KeyHash: string(hash),
			Enabled: true,
		}
		if err := db.Create(record).Error; err != nil {
			return fmt.Errorf("failed to store api key: %w", err)
		}
	}

	var count int64
	db.Model(&APIKey{}).Where("enabled = ?", true).Count(&count)
	if count > 0 {
		log.Printf("API key authentication enabled (%d keys)", count)
	} else {
		log.Printf("API key authentication disabled (no keys configured)")
	}
	return nil
}

// LoadAPIKeyHashes returns the bcrypt hashes of all enabled API keys.
func LoadAPIKeyHashes(db *gorm.DB) ([]string, error) {
	var records []APIKey
	if err := db.Where("enabled = ?", true).Find(&records).Error; err != nil {
		return nil, err
	}
	hashes := make([]string, 0, len(records))
	for _, r := range records {
		hashes = append(hashes, r.KeyHash)
	}
	return hashes, nil
}
