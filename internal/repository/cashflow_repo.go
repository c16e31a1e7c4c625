package repository

import (
	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashflowFilter struct {
	Period Period
	Type   model.CashflowType
	Scope  GroupScope
}

// CashflowTotals untuk ringkasan pemasukan / pengeluaran
type CashflowTotals struct {
	Income       decimal.Decimal `json:"total_income"`
	Expense      decimal.Decimal `json:"total_expense"`
	FixCost      decimal.Decimal `json:"fix_cost"`
	VariableCost decimal.Decimal `json:"variable_cost"`
}

type CashflowRepository interface {
	Create(entry *model.Cashflow) error
	Update(entry *model.Cashflow) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Cashflow, error)
	FindAll(filter CashflowFilter) ([]model.Cashflow, error)
	Totals(filter CashflowFilter) (*CashflowTotals, error)
}

type cashflowRepo struct {
	db *gorm.DB
}

func NewCashflowRepo(db *gorm.DB) CashflowRepository {
	return &cashflowRepo{db}
}

func (r *cashflowRepo) Create(entry *model.Cashflow) error {
	return r.db.Create(entry).Error
}

func (r *cashflowRepo) Update(entry *model.Cashflow) error {
	entry.Group = nil
	entry.CreatedByUser = nil
	return r.db.Save(entry).Error
}

func (r *cashflowRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Cashflow{}, id, deletedBy)
}

func (r *cashflowRepo) FindByID(id uuid.UUID) (*model.Cashflow, error) {
	var entry model.Cashflow
	err := r.db.Preload("Group").Preload("CreatedByUser").First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *cashflowRepo) filtered(filter CashflowFilter) *gorm.DB {
	q := filter.Period.apply(r.db.Model(&model.Cashflow{}), "transaction_date")
	q = filter.Scope.apply(q, "group_id")
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	return q
}

func (r *cashflowRepo) FindAll(filter CashflowFilter) ([]model.Cashflow, error) {
	var entries []model.Cashflow
	err := r.filtered(filter).Preload("Group").Preload("CreatedByUser").
		Order("transaction_date DESC, created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *cashflowRepo) Totals(filter CashflowFilter) (*CashflowTotals, error) {
	var totals CashflowTotals
	err := r.filtered(filter).
		Select(`COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense,
			COALESCE(SUM(CASE WHEN type = 'expense' AND category = 'fix_cost' THEN amount ELSE 0 END), 0) AS fix_cost,
			COALESCE(SUM(CASE WHEN type = 'expense' AND (category IS NULL OR category <> 'fix_cost') THEN amount ELSE 0 END), 0) AS variable_cost`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
