package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditEntry is append-only, so it does not embed BaseModel
type AuditEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action    AuditAction    `gorm:"type:varchar(10);not null" json:"action"`
	Table     string         `gorm:"column:table_name;type:varchar(50);not null;index" json:"table_name"`
	RecordID  string         `gorm:"type:varchar(64);not null;index" json:"record_id"`
	OldData   datatypes.JSON `json:"old_data,omitempty"`
	NewData   datatypes.JSON `json:"new_data,omitempty"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
}

func (AuditEntry) TableName() string {
	return "audit_trail"
}
