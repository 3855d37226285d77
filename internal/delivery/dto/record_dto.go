package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateRecordRequest opens a visit. issued_date defaults to today.
type CreateRecordRequest struct {
	PatientID   uuid.UUID `json:"patient" validate:"required"`
	DoctorID    uuid.UUID `json:"doctor" validate:"required"`
	VitalSigns  string    `json:"vital_signs"`
	PastIllness string    `json:"past_illness"`
	IssuedDate  string    `json:"issued_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateRecordRequest edits a visit. The patient of a record cannot change.
type UpdateRecordRequest struct {
	DoctorID    uuid.UUID `json:"doctor" validate:"required"`
	VitalSigns  string    `json:"vital_signs"`
	PastIllness string    `json:"past_illness"`
	IssuedDate  string    `json:"issued_date" validate:"required,datetime=2006-01-02"`
}

type RecordListQuery struct {
	PatientID            *uuid.UUID
	DoctorID             *uuid.UUID
	DoctorSpecialization string
	Search               string
	PageQuery
}

// Response DTOs

type RecordResponse struct {
	ID                       uuid.UUID                    `json:"id"`
	PatientID                uuid.UUID                    `json:"patient"`
	DoctorID                 uuid.UUID                    `json:"doctor"`
	DoctorName               string                       `json:"doctor_name,omitempty"`
	DoctorSpecialization     string                       `json:"doctor_specialization,omitempty"`
	VitalSigns               string                       `json:"vital_signs"`
	PastIllness              string                       `json:"past_illness"`
	IssuedDate               string                       `json:"issued_date"`
	IsDefault                bool                         `json:"is_default"`
	PrescribedMedicines      []PrescribedMedicineResponse `json:"prescribed_medicines"`
	TotalMedicinePrice       string                       `json:"total_medicine_price"`
	TotalPrescribedMedicines int                          `json:"total_prescribed_medicines"`
	CreatedAt                time.Time                    `json:"created_at"`
}
