package database

import (
	"log"

	"clinic-perf-cache/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite directory database and runs migrations.
// glebarez/sqlite is a pure Go driver, so no CGO is required.
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// Every new connection to :memory: is a fresh, empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&models.Clinic{}, &models.Doctor{}); err != nil {
		return nil, err
	}
	return db, nil
}

// Seed inserts a small demo directory when the clinics table is empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Clinic{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	clinics := []models.Clinic{
		{ID: "c-1", Name: "Riverside Family Clinic", Address: "12 River Rd", City: "Leeds", Phone: "0113 000 0001"},
		{ID: "c-2", Name: "Hilltop Medical Centre", Address: "4 Summit Ave", City: "York", Phone: "01904 000 002"},
	}
	doctors := []models.Doctor{
		{ID: "d-1", Name: "Dr Amira Shah", Specialty: "cardiology", ClinicID: "c-1", City: "Leeds", Rating: 4.8},
		{ID: "d-2", Name: "Dr Tom Reyes", Specialty: "dermatology", ClinicID: "c-1", City: "Leeds", Rating: 4.5},
		{ID: "d-3", Name: "Dr Lena Fischer", Specialty: "general practice", ClinicID: "c-2", City: "York", Rating: 4.9},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&clinics).Error; err != nil {
			return err
		}
		if err := tx.Create(&doctors).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d clinics and %d doctors", len(clinics), len(doctors))
		return nil
	})
}
