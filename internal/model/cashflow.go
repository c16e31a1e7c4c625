package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CashflowType string

const (
	CashIncome  CashflowType = "income"
	CashExpense CashflowType = "expense"
)

type CostCategory string

const (
	FixCost      CostCategory = "fix_cost"
	VariableCost CostCategory = "variable_cost"
)

// Cashflow is one bookkeeping entry
type Cashflow struct {
	BaseModel
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	Type            CashflowType    `gorm:"type:varchar(10);not null;index" json:"type"`
	GroupID         *uuid.UUID      `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Group           *Group          `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	ProofLink       *string         `gorm:"type:text" json:"proof_link,omitempty"`
	Category        *CostCategory   `gorm:"type:varchar(20)" json:"category,omitempty"` // expense only
	Description     string          `gorm:"type:text;not null" json:"description"`

	// User tracking
	CreatedByUserID *uuid.UUID `gorm:"type:uuid" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User      `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
}

func (Cashflow) TableName() string {
	return "cashflow"
}
