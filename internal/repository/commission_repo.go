package repository

import (
	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommissionFilter struct {
	Month     int
	Year      int
	AccountID *uuid.UUID
	GroupID   *uuid.UUID
}

// CommissionTotals sums the three commission stages
type CommissionTotals struct {
	Gross  decimal.Decimal `json:"gross"`
	Net    decimal.Decimal `json:"net"`
	Liquid decimal.Decimal `json:"liquid"`
}

type CommissionRepository interface {
	Create(c *model.Commission) error
	Update(c *model.Commission) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Commission, error)
	FindAll(filter CommissionFilter) ([]model.Commission, error)
	// UpsertMany writes all rows in one transaction keyed on (account, week, month, year)
	UpsertMany(rows []model.Commission) error
	Totals(filter CommissionFilter) (*CommissionTotals, error)
}

type commissionRepo struct {
	db *gorm.DB
}

func NewCommissionRepo(db *gorm.DB) CommissionRepository {
	return &commissionRepo{db}
}

func (r *commissionRepo) Create(c *model.Commission) error {
	return r.db.Create(c).Error
}

func (r *commissionRepo) Update(c *model.Commission) error {
	c.Account = nil
	return r.db.Save(c).Error
}

func (r *commissionRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Commission{}, id, deletedBy)
}

func (r *commissionRepo) FindByID(id uuid.UUID) (*model.Commission, error) {
	var c model.Commission
	if err := r.db.Preload("Account").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commissionRepo) filtered(filter CommissionFilter) *gorm.DB {
	q := r.db.Model(&model.Commission{})
	if filter.Month > 0 {
		q = q.Where("commissions.period_month = ?", filter.Month)
	}
	if filter.Year > 0 {
		q = q.Where("commissions.period_year = ?", filter.Year)
	}
	if filter.AccountID != nil {
		q = q.Where("commissions.account_id = ?", *filter.AccountID)
	}
	if filter.GroupID != nil {
		q = q.Joins("JOIN affiliate_accounts ON affiliate_accounts.id = commissions.account_id").
			Where("affiliate_accounts.group_id = ?", *filter.GroupID)
	}
	return q
}

func (r *commissionRepo) FindAll(filter CommissionFilter) ([]model.Commission, error) {
	var rows []model.Commission
	err := r.filtered(filter).Preload("Account").
		Order("commissions.period_year DESC, commissions.period_month DESC, commissions.period_week DESC").
		Find(&rows).Error
	return rows, err
}

func (r *commissionRepo) UpsertMany(rows []model.Commission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "account_id"}, {Name: "period_week"}, {Name: "period_month"}, {Name: "period_year"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"gross_commission", "net_commission", "liquid_commission", "updated_at", "updated_by",
				}),
			}).Create(&rows[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *commissionRepo) Totals(filter CommissionFilter) (*CommissionTotals, error) {
	var totals CommissionTotals
	err := r.filtered(filter).
		Select(`COALESCE(SUM(commissions.gross_commission), 0) AS gross,
			COALESCE(SUM(commissions.net_commission), 0) AS net,
			COALESCE(SUM(commissions.liquid_commission), 0) AS liquid`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
