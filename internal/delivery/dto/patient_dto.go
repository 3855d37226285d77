package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	FullName     string `json:"full_name" validate:"required,max=255"`
	Age          *int   `json:"age" validate:"required,gte=0,lte=150"`
	Gender       string `json:"gender" validate:"required,max=10"`
	Area         string `json:"area" validate:"max=255"`
	MobileNumber string `json:"mobile_number" validate:"max=20"`
	Status       string `json:"status" validate:"omitempty,oneof=active pending inactive"`
	IsWaiting    bool   `json:"is_waiting"`
}

type UpdatePatientRequest struct {
	FullName     string `json:"full_name" validate:"required,max=255"`
	Age          *int   `json:"age" validate:"required,gte=0,lte=150"`
	Gender       string `json:"gender" validate:"required,max=10"`
	Area         string `json:"area" validate:"max=255"`
	MobileNumber string `json:"mobile_number" validate:"max=20"`
	Status       string `json:"status" validate:"required,oneof=active pending inactive"`
	IsWaiting    bool   `json:"is_waiting"`
}

type PatientListQuery struct {
	Search    string
	Status    string `json:"status" validate:"omitempty,oneof=active pending inactive"`
	Area      string
	IsWaiting *bool
	PageQuery
}

// Response DTOs

type PatientResponse struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"full_name"`
	Age                int       `json:"age"`
	Gender             string    `json:"gender"`
	Area               string    `json:"area"`
	MobileNumber       string    `json:"mobile_number"`
	Status             string    `json:"status"`
	IsWaiting          bool      `json:"is_waiting"`
	RecordsCount       int64     `json:"records_count"`
	LastVisit          *string   `json:"last_visit"`
	TotalMedicinePrice string    `json:"total_medicine_price,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ExistingPatientResponse is returned instead of a create when an identical
// patient is already registered.
type ExistingPatientResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	PatientID uuid.UUID        `json:"patient_id"`
	Data      *PatientResponse `json:"data"`
}

type PatientPrescribedMedicinesResponse struct {
	PrescribedMedicines []PrescribedMedicineResponse `json:"prescribed_medicines"`
	TotalPrice          string                       `json:"total_price"`
}

type PatientGivenMedicinesResponse struct {
	GivenMedicines []GivenMedicineResponse `json:"given_medicines"`
	TotalPrice     string                  `json:"total_price"`
}
