package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset is a purchased item owned by the agency (lighting, furniture, ...).
type Asset struct {
	BaseModel
	PurchaseDate  time.Time       `gorm:"type:date;not null" json:"purchase_date"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"purchase_price"`
	Quantity      int             `gorm:"not null;default:1" json:"quantity"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	GroupID       *uuid.UUID      `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Group         *Group          `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// TotalValue is price * quantity
func (a *Asset) TotalValue() decimal.Decimal {
	return a.PurchasePrice.Mul(decimal.NewFromInt(int64(a.Quantity)))
}
