package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrescribedMedicine is a prescription line (medicine + free-text dosage) on a record
type PrescribedMedicine struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID   uuid.UUID `gorm:"type:uuid;not null;index" json:"record_id"`
	MedicineID uuid.UUID `gorm:"type:uuid;not null;index" json:"medicine_id"`
	Dosage     string    `gorm:"type:varchar(255)" json:"dosage"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Record   *Record   `gorm:"foreignKey:RecordID" json:"record,omitempty"`
	Medicine *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

func (PrescribedMedicine) TableName() string {
	return "prescribed_medicines"
}
