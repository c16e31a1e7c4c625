package model

import "github.com/google/uuid"

type Platform string

const (
	PlatformShopee Platform = "shopee"
	PlatformTiktok Platform = "tiktok"
)

type AccountStatus string

const (
	AccountActive     AccountStatus = "active"
	AccountTempBanned AccountStatus = "temp_banned"
	AccountPermBanned AccountStatus = "perm_banned"
)

type DataStatus string

const (
	DataEmpty    DataStatus = "empty"
	DataPending  DataStatus = "pending"
	DataRejected DataStatus = "rejected"
	DataVerified DataStatus = "verified"
)

// AffiliateAccount is a marketplace affiliate account operated by a group.
type AffiliateAccount struct {
	BaseModel
	Platform      Platform      `gorm:"type:varchar(20);not null" json:"platform" validate:"required,oneof=shopee tiktok"`
	Email         string        `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Username      string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	PhoneNumber   string        `gorm:"type:varchar(20)" json:"phone_number"`
	AccountStatus AccountStatus `gorm:"type:varchar(20);default:'active'" json:"account_status" validate:"omitempty,oneof=active temp_banned perm_banned"`
	DataStatus    DataStatus    `gorm:"type:varchar(20);default:'empty'" json:"data_status" validate:"omitempty,oneof=empty pending rejected verified"`
	Notes         *string       `gorm:"type:text" json:"notes,omitempty"`
	GroupID       *uuid.UUID    `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Group         *Group        `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
