package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	UserID         uuid.UUID `json:"user" validate:"required"`
	Name           string    `json:"name" validate:"required,max=255"`
	Specialization string    `json:"specialization" validate:"required,max=255"`
	MobileNumber   string    `json:"mobile_number" validate:"required,max=20"`
}

// UpdateDoctorRequest has no user field: the account link is fixed at creation.
type UpdateDoctorRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Specialization string `json:"specialization" validate:"required,max=255"`
	MobileNumber   string `json:"mobile_number" validate:"required,max=20"`
}

type DoctorListQuery struct {
	Search string
	PageQuery
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user"`
	Username       string    `json:"username,omitempty"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	MobileNumber   string    `json:"mobile_number"`
	CreatedAt      time.Time `json:"created_at"`
}
