package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientStatus represents where a patient is in the clinic workflow
type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusPending  PatientStatus = "pending"
	PatientStatusInactive PatientStatus = "inactive"
)

// Patient represents a registered clinic patient
type Patient struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName     string        `gorm:"type:varchar(255);not null;index" json:"full_name"`
	Age          int           `gorm:"not null" json:"age"`
	Gender       string        `gorm:"type:varchar(10);not null" json:"gender"`
	Area         string        `gorm:"type:varchar(255);index" json:"area"`
	MobileNumber string        `gorm:"type:varchar(20)" json:"mobile_number"`
	Status       PatientStatus `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	IsWaiting    bool          `gorm:"not null;default:false" json:"is_waiting"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Records []Record `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"records,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Valid reports whether s is a known patient status.
func (s PatientStatus) Valid() bool {
	switch s {
	case PatientStatusActive, PatientStatusPending, PatientStatusInactive:
		return true
	}
	return false
}

// PatientRecordStats summarises a patient's visits.
type PatientRecordStats struct {
	PatientID    uuid.UUID
	RecordsCount int64
	LastVisit    *time.Time
}
