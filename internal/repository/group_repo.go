package repository

import (
	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepository interface {
	Create(group *model.Group) error
	Update(group *model.Group) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Group, error)
	FindAll() ([]model.Group, error)
	Count() (int64, error)
}

type groupRepo struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db}
}

func (r *groupRepo) Create(group *model.Group) error {
	return r.db.Create(group).Error
}

func (r *groupRepo) Update(group *model.Group) error {
	return r.db.Save(group).Error
}

func (r *groupRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Group{}, id, deletedBy)
}

func (r *groupRepo) FindByID(id uuid.UUID) (*model.Group, error) {
	var group model.Group
	if err := r.db.First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) FindAll() ([]model.Group, error) {
	var groups []model.Group
	err := r.db.Order("group_name ASC").Find(&groups).Error
	return groups, err
}

func (r *groupRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Group{}).Count(&count).Error
	return count, err
}

// softDelete stamps deleted_at and deleted_by in one statement
func softDelete(db *gorm.DB, value interface{}, id uuid.UUID, deletedBy string) error {
	res := db.Model(value).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
