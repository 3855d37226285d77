package entity

import (
	"time"

	"patients-management/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GivenMedicine is a dispensing event: a quantity of a prescribed medicine
// handed to a patient at a point in time.
type GivenMedicine struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID            uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	PrescribedMedicineID uuid.UUID `gorm:"type:uuid;not null;index" json:"prescribed_medicine_id"`
	Quantity             int       `gorm:"not null" json:"quantity"`
	GivenAt              time.Time `gorm:"autoCreateTime;<-:create;index" json:"given_at"`

	// Relationships
	Patient            *Patient            `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	PrescribedMedicine *PrescribedMedicine `gorm:"foreignKey:PrescribedMedicineID" json:"prescribed_medicine,omitempty"`
}

func (GivenMedicine) TableName() string {
	return "given_medicines"
}

// Medicine returns the dispensed catalog entry, or nil when the chain is not loaded.
func (g *GivenMedicine) Medicine() *Medicine {
	if g.PrescribedMedicine == nil {
		return nil
	}
	return g.PrescribedMedicine.Medicine
}

// TotalPrice is price × quantity rounded to cents. Missing links yield zero.
func (g *GivenMedicine) TotalPrice() decimal.Decimal {
	m := g.Medicine()
	if m == nil {
		return money.Zero
	}
	return money.LineTotal(m.Price, g.Quantity)
}
