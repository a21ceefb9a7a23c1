// Package database keeps an audit journal of placed orders and their status
// changes. The journal mirrors the in-memory ledger after the fact; it is
// never read back to rebuild state.
package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

// Open connects to the journal database and migrates its tables. driver is
// "sqlite3" or "postgres".
func Open(driver, dsn string, logSQL bool) (*gorm.DB, error) {
	switch driver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	db.LogMode(logSQL)
	if driver == "sqlite3" {
		// SQLite has one writer, and each ":memory:" connection is its own
		// database.
		db.DB().SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the journal tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&OrderRecord{}, &StatusChange{}).Error; err != nil {
		return fmt.Errorf("migrating journal tables: %w", err)
	}
	return nil
}
