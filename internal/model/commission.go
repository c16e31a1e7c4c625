package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PeriodWeek string

const (
	WeekM1 PeriodWeek = "M1"
	WeekM2 PeriodWeek = "M2"
	WeekM3 PeriodWeek = "M3"
	WeekM4 PeriodWeek = "M4"
	WeekM5 PeriodWeek = "M5"
)

// CommissionFeeRate is the platform fee taken at each step gross -> net -> liquid
var CommissionFeeRate = decimal.RequireFromString("0.10")

// Commission is the weekly commission earned by one affiliate account.
type Commission struct {
	BaseModel
	AccountID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_commission_period,priority:1" json:"account_id" validate:"uuid_required"`
	Account          *AffiliateAccount `gorm:"foreignKey:AccountID" json:"account,omitempty" validate:"-"`
	PeriodWeek       PeriodWeek        `gorm:"type:varchar(2);not null;uniqueIndex:idx_commission_period,priority:2" json:"period_week" validate:"required,oneof=M1 M2 M3 M4 M5"`
	PeriodMonth      int               `gorm:"not null;uniqueIndex:idx_commission_period,priority:3" json:"period_month" validate:"required,min=1,max=12"`
	PeriodYear       int               `gorm:"not null;uniqueIndex:idx_commission_period,priority:4" json:"period_year" validate:"required,min=2000,max=2100"`
	GrossCommission  decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0" json:"gross_commission"`
	NetCommission    decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0" json:"net_commission"`
	LiquidCommission decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0" json:"liquid_commission"`
}

// DeriveNet applies one fee step: gross * 0.9
func DeriveNet(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(decimal.NewFromInt(1).Sub(CommissionFeeRate))
}

// DeriveLiquid applies the second fee step: net * 0.9
func DeriveLiquid(net decimal.Decimal) decimal.Decimal {
	return net.Mul(decimal.NewFromInt(1).Sub(CommissionFeeRate))
}
