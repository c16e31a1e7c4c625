package service

import (
	"fmt"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetService interface {
	Create(req *AssetRequest, actor Actor) (*model.Asset, error)
	Update(id uuid.UUID, req *AssetRequest, actor Actor) (*model.Asset, error)
	Delete(id uuid.UUID, actor Actor) error
	List(actor Actor) ([]model.Asset, error)
	Summary(actor Actor) (*AssetSummary, error)
}

type AssetRequest struct {
	PurchaseDate  string          `json:"purchase_date" validate:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity" validate:"min=1"`
	Description   string          `json:"description" validate:"required"`
	GroupID       *uuid.UUID      `json:"group_id"`
}

type AssetSummary struct {
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type assetService struct {
	assetRepo repository.AssetRepository
	audit     AuditService
}

func NewAssetService(assetRepo repository.AssetRepository, audit AuditService) AssetService {
	return &assetService{assetRepo: assetRepo, audit: audit}
}

func (s *assetService) apply(asset *model.Asset, req *AssetRequest, actor Actor) error {
	if err := validate(req); err != nil {
		return err
	}
	date, err := parseDate(req.PurchaseDate)
	if err != nil {
		return err
	}
	if err := requireNonNegative("purchase_price", req.PurchasePrice); err != nil {
		return err
	}
	asset.PurchaseDate = date
	asset.PurchasePrice = req.PurchasePrice
	asset.Quantity = req.Quantity
	asset.Description = req.Description
	asset.GroupID = req.GroupID
	if !actor.Role.SeesAllGroups() {
		asset.GroupID = actor.GroupID
	}
	return nil
}

func (s *assetService) Create(req *AssetRequest, actor Actor) (*model.Asset, error) {
	asset := &model.Asset{}
	if err := s.apply(asset, req, actor); err != nil {
		return nil, err
	}
	asset.CreatedBy = actor.ID.String()
	asset.UpdatedBy = actor.ID.String()
	if err := s.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditCreate, "assets", asset.ID, nil, asset)
	return asset, nil
}

func (s *assetService) Update(id uuid.UUID, req *AssetRequest, actor Actor) (*model.Asset, error) {
	asset, err := s.find(id, actor)
	if err != nil {
		return nil, err
	}
	before := *asset
	if err := s.apply(asset, req, actor); err != nil {
		return nil, err
	}
	asset.UpdatedBy = actor.ID.String()
	if err := s.assetRepo.Update(asset); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditUpdate, "assets", asset.ID, before, asset)
	return asset, nil
}

func (s *assetService) Delete(id uuid.UUID, actor Actor) error {
	asset, err := s.find(id, actor)
	if err != nil {
		return err
	}
	if err := s.assetRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "asset")
	}
	s.audit.Record(actor, model.AuditDelete, "assets", id, asset, nil)
	return nil
}

func (s *assetService) find(id uuid.UUID, actor Actor) (*model.Asset, error) {
	asset, err := s.assetRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "asset")
	}
	if !actor.Role.SeesAllGroups() && !sameGroup(asset.GroupID, actor.GroupID) {
		return nil, fmt.Errorf("%w: asset", ErrNotFound)
	}
	return asset, nil
}

func (s *assetService) List(actor Actor) ([]model.Asset, error) {
	return s.assetRepo.FindAll(actor.Scope())
}

func (s *assetService) Summary(actor Actor) (*AssetSummary, error) {
	assets, err := s.assetRepo.FindAll(actor.Scope())
	if err != nil {
		return nil, err
	}
	total, err := s.assetRepo.TotalValue(actor.Scope())
	if err != nil {
		return nil, err
	}
	return &AssetSummary{Count: len(assets), TotalValue: total}, nil
}
