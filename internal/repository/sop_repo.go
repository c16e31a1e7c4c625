package repository

import (
	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SOPRepository interface {
	Create(doc *model.SOPDocument) error
	Update(doc *model.SOPDocument) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.SOPDocument, error)
	FindAll() ([]model.SOPDocument, error)
}

type sopRepo struct {
	db *gorm.DB
}

func NewSOPRepo(db *gorm.DB) SOPRepository {
	return &sopRepo{db}
}

func (r *sopRepo) Create(doc *model.SOPDocument) error {
	return r.db.Create(doc).Error
}

func (r *sopRepo) Update(doc *model.SOPDocument) error {
	doc.UploadedByUser = nil
	return r.db.Save(doc).Error
}

func (r *sopRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.SOPDocument{}, id, deletedBy)
}

func (r *sopRepo) FindByID(id uuid.UUID) (*model.SOPDocument, error) {
	var doc model.SOPDocument
	if err := r.db.Preload("UploadedByUser").First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *sopRepo) FindAll() ([]model.SOPDocument, error) {
	var docs []model.SOPDocument
	err := r.db.Preload("UploadedByUser").Order("created_at DESC").Find(&docs).Error
	return docs, err
}
