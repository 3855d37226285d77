package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreatePrescribedMedicineRequest targets an explicit record, or a patient
// whose default record is resolved on the fly.
type CreatePrescribedMedicineRequest struct {
	RecordID   *uuid.UUID `json:"record" validate:"required_without=PatientID"`
	PatientID  *uuid.UUID `json:"patient" validate:"required_without=RecordID"`
	MedicineID uuid.UUID  `json:"medicine" validate:"required"`
	Dosage     string     `json:"dosage" validate:"max=255"`
}

type UpdatePrescribedMedicineRequest struct {
	MedicineID uuid.UUID `json:"medicine" validate:"required"`
	Dosage     string    `json:"dosage" validate:"max=255"`
}

type PrescribedMedicineListQuery struct {
	RecordID   *uuid.UUID
	MedicineID *uuid.UUID
	PageQuery
}

// Response DTOs

type PrescribedMedicineResponse struct {
	ID            uuid.UUID `json:"id"`
	RecordID      uuid.UUID `json:"record"`
	MedicineID    uuid.UUID `json:"medicine"`
	MedicineName  string    `json:"medicine_name"`
	MedicinePrice string    `json:"medicine_price"`
	Dosage        string    `json:"dosage"`
	CreatedAt     time.Time `json:"created_at"`
}
