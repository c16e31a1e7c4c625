package repository

import (
	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceRepository interface {
	Create(device *model.Device) error
	Update(device *model.Device) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Device, error)
	FindAll(scope GroupScope) ([]model.Device, error)
}

type deviceRepo struct {
	db *gorm.DB
}

func NewDeviceRepo(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db}
}

func (r *deviceRepo) Create(device *model.Device) error {
	return r.db.Create(device).Error
}

func (r *deviceRepo) Update(device *model.Device) error {
	device.Group = nil
	return r.db.Save(device).Error
}

func (r *deviceRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Device{}, id, deletedBy)
}

func (r *deviceRepo) FindByID(id uuid.UUID) (*model.Device, error) {
	var device model.Device
	if err := r.db.Preload("Group").First(&device, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepo) FindAll(scope GroupScope) ([]model.Device, error) {
	var devices []model.Device
	q := scope.apply(r.db.Preload("Group"), "group_id")
	err := q.Order("device_code ASC").Find(&devices).Error
	return devices, err
}
