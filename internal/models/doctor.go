package models

import (
	"gorm.io/gorm"
)

// Doctor represents a practitioner attached to a clinic
type Doctor struct {
	ID         string  `json:"id" gorm:"primaryKey"`
	Name       string  `json:"name" gorm:"not null"`
	Specialty  string  `json:"specialty" gorm:"index"`
	ClinicID   string  `json:"clinicId" gorm:"column:clinic_id;index"`
	City       string  `json:"city" gorm:"index"`
	Rating     float64 `json:"rating"`
	gorm.Model `json:"-"`
}

// TableName specifies the table name for Doctor Model
func (Doctor) TableName() string {
	return "doctors"
}
