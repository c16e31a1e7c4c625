package repository

import (
	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AssetRepository interface {
	Create(asset *model.Asset) error
	Update(asset *model.Asset) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Asset, error)
	FindAll(scope GroupScope) ([]model.Asset, error)
	// TotalValue = SUM(purchase_price * quantity)
	TotalValue(scope GroupScope) (decimal.Decimal, error)
}

type assetRepo struct {
	db *gorm.DB
}

func NewAssetRepo(db *gorm.DB) AssetRepository {
	return &assetRepo{db}
}

func (r *assetRepo) Create(asset *model.Asset) error {
	return r.db.Create(asset).Error
}

func (r *assetRepo) Update(asset *model.Asset) error {
	asset.Group = nil
	return r.db.Save(asset).Error
}

func (r *assetRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Asset{}, id, deletedBy)
}

func (r *assetRepo) FindByID(id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.Preload("Group").First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) FindAll(scope GroupScope) ([]model.Asset, error) {
	var assets []model.Asset
	q := scope.apply(r.db.Preload("Group"), "group_id")
	err := q.Order("purchase_date DESC").Find(&assets).Error
	return assets, err
}

func (r *assetRepo) TotalValue(scope GroupScope) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := scope.apply(r.db.Model(&model.Asset{}), "group_id")
	err := q.Select("COALESCE(SUM(purchase_price * quantity), 0)").Scan(&total).Error
	return total, err
}
