package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateUserRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=150"`
	Number        string `json:"number" validate:"max=20"`
	Password      string `json:"password" validate:"required,min=5"`
	Password2     string `json:"password2" validate:"required,eqfield=Password"`
	Role          string `json:"role" validate:"omitempty,oneof=reception doctor pharmacist admin"`
	SecondaryRole string `json:"secondary_role" validate:"omitempty,oneof=reception doctor pharmacist admin"`
	IsActive      *bool  `json:"is_active"`
}

// UpdateUserRequest replaces every editable field. The password is only
// changed when supplied.
type UpdateUserRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=150"`
	Number        string `json:"number" validate:"max=20"`
	Role          string `json:"role" validate:"required,oneof=reception doctor pharmacist admin"`
	SecondaryRole string `json:"secondary_role" validate:"omitempty,oneof=reception doctor pharmacist admin"`
	IsActive      *bool  `json:"is_active"`
	Password      string `json:"password" validate:"omitempty,min=5"`
	Password2     string `json:"password2" validate:"eqfield=Password"`
}

// PatchUserRequest changes only the fields present in the body. An empty
// secondary_role clears it.
type PatchUserRequest struct {
	Username      *string `json:"username" validate:"omitempty,min=3,max=150"`
	Number        *string `json:"number" validate:"omitempty,max=20"`
	Role          *string `json:"role"`
	SecondaryRole *string `json:"secondary_role"`
	IsActive      *bool   `json:"is_active"`
	Password      *string `json:"password" validate:"omitempty,min=5"`
	Password2     *string `json:"password2"`
}

type UserListQuery struct {
	Search        string
	Role          string `json:"role" validate:"omitempty,oneof=reception doctor pharmacist admin"`
	SecondaryRole string `json:"secondary_role" validate:"omitempty,oneof=reception doctor pharmacist admin"`
	PageQuery
}

// Response DTOs

type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Number        string     `json:"number"`
	Role          string     `json:"role"`
	SecondaryRole *string    `json:"secondary_role"`
	IsActive      bool       `json:"is_active"`
	DoctorID      *uuid.UUID `json:"doctor_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
