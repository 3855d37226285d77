package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateGivenMedicineRequest dispenses against an existing prescription, or
// against a medicine + dosage, which prescribes it on the patient's default record.
type CreateGivenMedicineRequest struct {
	PatientID            uuid.UUID  `json:"patient" validate:"required"`
	PrescribedMedicineID *uuid.UUID `json:"prescribed_medicine" validate:"required_without=MedicineID"`
	MedicineID           *uuid.UUID `json:"medicine" validate:"required_without=PrescribedMedicineID"`
	Dosage               string     `json:"dosage" validate:"max=255"`
	Quantity             int        `json:"quantity" validate:"required,gte=1"`
}

// UpdateGivenMedicineRequest only corrects the quantity; given_at never changes.
type UpdateGivenMedicineRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type GivenMedicineListQuery struct {
	PatientID            *uuid.UUID
	PrescribedMedicineID *uuid.UUID
	PageQuery
}

// Response DTOs

type GivenMedicineResponse struct {
	ID                   uuid.UUID `json:"id"`
	PatientID            uuid.UUID `json:"patient"`
	PrescribedMedicineID uuid.UUID `json:"prescribed_medicine"`
	MedicineName         string    `json:"medicine_name"`
	Quantity             int       `json:"quantity"`
	GivenAt              time.Time `json:"given_at"`
	TotalPrice           string    `json:"total_price"`
}
