package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record is a single clinical encounter between a patient and a doctor.
// A patient has at most one default record, which collects prescriptions
// and dispensing that were not tied to an explicit visit.
type Record struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	VitalSigns  string         `gorm:"type:text" json:"vital_signs"`
	PastIllness string         `gorm:"type:text" json:"past_illness"`
	IssuedDate  datatypes.Date `gorm:"not null;index" json:"issued_date"`
	IsDefault   bool           `gorm:"not null;default:false" json:"is_default"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient             *Patient             `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor              *Doctor              `gorm:"foreignKey:DoctorID;constraint:OnDelete:RESTRICT" json:"doctor,omitempty"`
	PrescribedMedicines []PrescribedMedicine `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"prescribed_medicines,omitempty"`
}

func (Record) TableName() string {
	return "records"
}

// NewDefaultRecord builds the fallback record for a patient, issued on day.
func NewDefaultRecord(patientID, doctorID uuid.UUID, day time.Time) *Record {
	return &Record{
		PatientID:  patientID,
		DoctorID:   doctorID,
		IssuedDate: datatypes.Date(DateOnly(day)),
		IsDefault:  true,
	}
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
