package testutil

import (
	"clinic-perf-cache/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	return database.Open(":memory:", logger.Silent)
}

// NewSeededDB is NewInMemoryDB plus the demo directory rows.
func NewSeededDB() (*gorm.DB, error) {
	db, err := NewInMemoryDB()
	if err != nil {
		return nil, err
	}
	if err := database.Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}
