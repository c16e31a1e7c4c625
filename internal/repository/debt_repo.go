package repository

import (
	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DebtFilter struct {
	Type   model.DebtType
	Status model.PaymentStatus
	Scope  GroupScope
}

// DebtTotals only counts pending entries
type DebtTotals struct {
	OutstandingDebt       decimal.Decimal `json:"outstanding_debt"`
	OutstandingReceivable decimal.Decimal `json:"outstanding_receivable"`
}

type DebtRepository interface {
	Create(entry *model.DebtReceivable) error
	Update(entry *model.DebtReceivable) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.DebtReceivable, error)
	FindAll(filter DebtFilter) ([]model.DebtReceivable, error)
	Outstanding(scope GroupScope) (*DebtTotals, error)
}

type debtRepo struct {
	db *gorm.DB
}

func NewDebtRepo(db *gorm.DB) DebtRepository {
	return &debtRepo{db}
}

func (r *debtRepo) Create(entry *model.DebtReceivable) error {
	return r.db.Create(entry).Error
}

func (r *debtRepo) Update(entry *model.DebtReceivable) error {
	entry.Group = nil
	return r.db.Save(entry).Error
}

func (r *debtRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.DebtReceivable{}, id, deletedBy)
}

func (r *debtRepo) FindByID(id uuid.UUID) (*model.DebtReceivable, error) {
	var entry model.DebtReceivable
	if err := r.db.Preload("Group").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *debtRepo) FindAll(filter DebtFilter) ([]model.DebtReceivable, error) {
	var entries []model.DebtReceivable
	q := filter.Scope.apply(r.db.Preload("Group"), "group_id")
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("transaction_date DESC").Find(&entries).Error
	return entries, err
}

func (r *debtRepo) Outstanding(scope GroupScope) (*DebtTotals, error) {
	var totals DebtTotals
	q := scope.apply(r.db.Model(&model.DebtReceivable{}), "group_id")
	err := q.Where("status = ?", model.PaymentPending).
		Select(`COALESCE(SUM(CASE WHEN type = 'debt' THEN amount ELSE 0 END), 0) AS outstanding_debt,
			COALESCE(SUM(CASE WHEN type = 'receivable' THEN amount ELSE 0 END), 0) AS outstanding_receivable`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
