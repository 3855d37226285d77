package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicineRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Dose           string           `json:"dose" validate:"required,max=100"`
	ScientificName string           `json:"scientific_name" validate:"max=255"`
	Company        string           `json:"company" validate:"max=255"`
	Price          *decimal.Decimal `json:"price" validate:"required,gte=0"`
}

type UpdateMedicineRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Dose           string           `json:"dose" validate:"required,max=100"`
	ScientificName string           `json:"scientific_name" validate:"max=255"`
	Company        string           `json:"company" validate:"max=255"`
	Price          *decimal.Decimal `json:"price" validate:"required,gte=0"`
}

type MedicineListQuery struct {
	Search string
	PageQuery
}

// Response DTOs

type MedicineResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Dose           string    `json:"dose"`
	ScientificName string    `json:"scientific_name"`
	Company        string    `json:"company"`
	Price          string    `json:"price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
