package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KPITarget is the monthly goal of a group
type KPITarget struct {
	BaseModel
	TargetMonth           int             `gorm:"not null;uniqueIndex:idx_kpi_group_period,priority:2" json:"target_month"`
	TargetYear            int             `gorm:"not null;uniqueIndex:idx_kpi_group_period,priority:3" json:"target_year"`
	TargetOmzet           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"target_omzet"`
	TargetGrossCommission decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"target_gross_commission"`
	TargetAttendanceDays  int             `gorm:"not null" json:"target_attendance_days"`
	GroupID               uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_kpi_group_period,priority:1" json:"group_id"`
	Group                 *Group          `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (KPITarget) TableName() string {
	return "kpi_targets"
}
