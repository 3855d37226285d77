package entity

import (
	"time"

	"github.com/google/uuid"
)

// Domain-level filters used by the repository layer so it never depends on delivery DTOs.

// Pagination selects one page of a list. A zero Limit means no paging.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the row offset of the selected page.
func (p Pagination) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type PatientFilter struct {
	Search    string // full name or mobile number (ILIKE)
	Status    PatientStatus
	Area      string
	IsWaiting *bool
	Pagination
}

type DoctorFilter struct {
	Search string // name, specialization, mobile number or username (ILIKE)
	Pagination
}

type MedicineFilter struct {
	Search string // name, scientific name or company (ILIKE)
	Pagination
}

type RecordFilter struct {
	PatientID            *uuid.UUID
	DoctorID             *uuid.UUID
	DoctorSpecialization string
	Search               string // patient name, doctor name or specialization (ILIKE)
	Pagination
}

type PrescribedMedicineFilter struct {
	RecordID   *uuid.UUID
	MedicineID *uuid.UUID
	PatientID  *uuid.UUID // through the owning record
	Pagination
}

type GivenMedicineFilter struct {
	PatientID            *uuid.UUID
	PrescribedMedicineID *uuid.UUID
	Pagination
}

type UserFilter struct {
	Search        string // username (ILIKE)
	Role          Role
	SecondaryRole Role
	Pagination
}

type AuditLogFilter struct {
	Action string
	Pagination
}

// BillingScope narrows a monetary total. An empty scope covers every dispensing event.
type BillingScope struct {
	PatientID *uuid.UUID
	RecordID  *uuid.UUID
}

// UsageReportFilter selects dispensing events for the medicine usage report.
// From is inclusive and To exclusive; nil bounds are open.
type UsageReportFilter struct {
	From *time.Time
	To   *time.Time
	Area string
}
