package dto

import (
	"time"

	"patients-management/internal/domain/entity"

	"github.com/google/uuid"
)

type AuditLogListQuery struct {
	Action string
	PageQuery
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	UserID    *uuid.UUID    `json:"user_id"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}
