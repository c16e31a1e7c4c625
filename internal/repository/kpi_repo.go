package repository

import (
	"errors"

	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KPIRepository interface {
	Create(target *model.KPITarget) error
	Update(target *model.KPITarget) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.KPITarget, error)
	// FindByGroupPeriod returns (nil, nil) when the group has no target for the month
	FindByGroupPeriod(groupID uuid.UUID, month, year int) (*model.KPITarget, error)
	FindAll(scope GroupScope, month, year int) ([]model.KPITarget, error)
}

type kpiRepo struct {
	db *gorm.DB
}

func NewKPIRepo(db *gorm.DB) KPIRepository {
	return &kpiRepo{db}
}

func (r *kpiRepo) Create(target *model.KPITarget) error {
	return r.db.Create(target).Error
}

func (r *kpiRepo) Update(target *model.KPITarget) error {
	target.Group = nil
	return r.db.Save(target).Error
}

func (r *kpiRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.KPITarget{}, id, deletedBy)
}

func (r *kpiRepo) FindByID(id uuid.UUID) (*model.KPITarget, error) {
	var target model.KPITarget
	if err := r.db.Preload("Group").First(&target, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *kpiRepo) FindByGroupPeriod(groupID uuid.UUID, month, year int) (*model.KPITarget, error) {
	var target model.KPITarget
	err := r.db.Where("group_id = ? AND target_month = ? AND target_year = ?", groupID, month, year).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *kpiRepo) FindAll(scope GroupScope, month, year int) ([]model.KPITarget, error) {
	var targets []model.KPITarget
	q := scope.apply(r.db.Preload("Group"), "group_id")
	if month > 0 {
		q = q.Where("target_month = ?", month)
	}
	if year > 0 {
		q = q.Where("target_year = ?", year)
	}
	err := q.Order("target_year DESC, target_month DESC").Find(&targets).Error
	return targets, err
}
