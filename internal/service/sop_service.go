package service

import (
	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
)

type SOPService interface {
	Create(req *SOPRequest, actor Actor) (*model.SOPDocument, error)
	Update(id uuid.UUID, req *SOPRequest, actor Actor) (*model.SOPDocument, error)
	Delete(id uuid.UUID, actor Actor) error
	List() ([]model.SOPDocument, error)
}

type SOPRequest struct {
	Title    string         `json:"title" validate:"required"`
	FileURL  string         `json:"file_url" validate:"required,url"`
	FileType model.FileType `json:"file_type" validate:"required,oneof=pdf google_drive youtube"`
}

type sopService struct {
	sopRepo repository.SOPRepository
	audit   AuditService
}

func NewSOPService(sopRepo repository.SOPRepository, audit AuditService) SOPService {
	return &sopService{sopRepo: sopRepo, audit: audit}
}

func (s *sopService) Create(req *SOPRequest, actor Actor) (*model.SOPDocument, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	uploader := actor.ID
	doc := &model.SOPDocument{
		Title:        req.Title,
		FileURL:      req.FileURL,
		FileType:     req.FileType,
		UploadedByID: &uploader,
	}
	doc.CreatedBy = actor.ID.String()
	doc.UpdatedBy = actor.ID.String()
	if err := s.sopRepo.Create(doc); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditCreate, doc.TableName(), doc.ID, nil, doc)
	return doc, nil
}

func (s *sopService) Update(id uuid.UUID, req *SOPRequest, actor Actor) (*model.SOPDocument, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	doc, err := s.sopRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "SOP document")
	}
	before := *doc
	doc.Title = req.Title
	doc.FileURL = req.FileURL
	doc.FileType = req.FileType
	doc.UpdatedBy = actor.ID.String()
	if err := s.sopRepo.Update(doc); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditUpdate, doc.TableName(), doc.ID, before, doc)
	return doc, nil
}

func (s *sopService) Delete(id uuid.UUID, actor Actor) error {
	doc, err := s.sopRepo.FindByID(id)
	if err != nil {
		return storeErr(err, "SOP document")
	}
	if err := s.sopRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "SOP document")
	}
	s.audit.Record(actor, model.AuditDelete, doc.TableName(), id, doc, nil)
	return nil
}

func (s *sopService) List() ([]model.SOPDocument, error) {
	return s.sopRepo.FindAll()
}
