package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DebtType string

const (
	TypeDebt       DebtType = "debt"
	TypeReceivable DebtType = "receivable"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// DebtReceivable tracks money owed by (debt) or to (receivable) the agency
type DebtReceivable struct {
	BaseModel
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	Type            DebtType        `gorm:"type:varchar(15);not null" json:"type"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Status          PaymentStatus   `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	GroupID         *uuid.UUID      `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Group           *Group          `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (DebtReceivable) TableName() string {
	return "debt_receivables"
}
