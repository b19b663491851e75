package models

import (
	"gorm.io/gorm"
)

// Clinic represents a clinic in the directory
type Clinic struct {
	ID         string   `json:"id" gorm:"primaryKey"`
	Name       string   `json:"name" gorm:"not null"`
	Address    string   `json:"address"`
	City       string   `json:"city" gorm:"index"`
	Phone      string   `json:"phone"`
	Doctors    []Doctor `json:"doctors,omitempty" gorm:"foreignKey:ClinicID"`
	gorm.Model `json:"-"`
}

// TableName specifies the table name for Clinic Model
func (Clinic) TableName() string {
	return "clinics"
}
