package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Device is a phone used for live streaming.
type Device struct {
	BaseModel
	DeviceCode     string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"device_code" validate:"required"` // e.g. "HP-01"
	IMEI           string          `gorm:"type:varchar(30)" json:"imei"`
	GoogleAccount  string          `gorm:"type:varchar(255)" json:"google_account"`
	PurchaseDate   *time.Time      `gorm:"type:date" json:"purchase_date,omitempty"`
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"purchase_price"`
	ScreenshotLink string          `gorm:"type:text" json:"screenshot_link"`
	GroupID        *uuid.UUID      `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Group          *Group          `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
