package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is one entry of the mutation audit trail
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is the JSONB payload of an audit entry
type JSON = datatypes.JSONMap

// Common audit actions
const (
	AuditActionUserLogin          = "user.login"
	AuditActionUserLogout         = "user.logout"
	AuditActionUserRegister       = "user.register"
	AuditActionUserCreate         = "user.create"
	AuditActionUserUpdate         = "user.update"
	AuditActionUserDelete         = "user.delete"
	AuditActionPatientCreate      = "patient.create"
	AuditActionPatientUpdate      = "patient.update"
	AuditActionPatientDelete      = "patient.delete"
	AuditActionDoctorCreate       = "doctor.create"
	AuditActionDoctorUpdate       = "doctor.update"
	AuditActionDoctorDelete       = "doctor.delete"
	AuditActionMedicineCreate     = "medicine.create"
	AuditActionMedicineUpdate     = "medicine.update"
	AuditActionMedicineDelete     = "medicine.delete"
	AuditActionRecordCreate       = "record.create"
	AuditActionRecordUpdate       = "record.update"
	AuditActionRecordDelete       = "record.delete"
	AuditActionPrescriptionCreate = "prescribed_medicine.create"
	AuditActionPrescriptionUpdate = "prescribed_medicine.update"
	AuditActionPrescriptionDelete = "prescribed_medicine.delete"
	AuditActionDispenseCreate     = "given_medicine.create"
	AuditActionDispenseUpdate     = "given_medicine.update"
	AuditActionDispenseDelete     = "given_medicine.delete"
)
