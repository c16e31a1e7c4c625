package service

import (
	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeviceService interface {
	Create(req *DeviceRequest, actor Actor) (*model.Device, error)
	Update(id uuid.UUID, req *DeviceRequest, actor Actor) (*model.Device, error)
	Delete(id uuid.UUID, actor Actor) error
	Get(id uuid.UUID) (*model.Device, error)
	List(groupID *uuid.UUID) ([]model.Device, error)
}

type DeviceRequest struct {
	DeviceCode     string          `json:"device_code" validate:"required"`
	IMEI           string          `json:"imei"`
	GoogleAccount  string          `json:"google_account" validate:"omitempty,email"`
	PurchaseDate   *string         `json:"purchase_date"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	ScreenshotLink string          `json:"screenshot_link" validate:"omitempty,url"`
	GroupID        *uuid.UUID      `json:"group_id"`
}

type deviceService struct {
	deviceRepo repository.DeviceRepository
	audit      AuditService
}

func NewDeviceService(deviceRepo repository.DeviceRepository, audit AuditService) DeviceService {
	return &deviceService{deviceRepo: deviceRepo, audit: audit}
}

func (s *deviceService) apply(device *model.Device, req *DeviceRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	purchaseDate, err := parseOptionalDate(req.PurchaseDate)
	if err != nil {
		return err
	}
	if err := requireNonNegative("purchase_price", req.PurchasePrice); err != nil {
		return err
	}
	device.DeviceCode = req.DeviceCode
	device.IMEI = req.IMEI
	device.GoogleAccount = req.GoogleAccount
	device.PurchaseDate = purchaseDate
	device.PurchasePrice = req.PurchasePrice
	device.ScreenshotLink = req.ScreenshotLink
	device.GroupID = req.GroupID
	return nil
}

func (s *deviceService) Create(req *DeviceRequest, actor Actor) (*model.Device, error) {
	device := &model.Device{}
	if err := s.apply(device, req); err != nil {
		return nil, err
	}
	device.CreatedBy = actor.ID.String()
	device.UpdatedBy = actor.ID.String()
	if err := s.deviceRepo.Create(device); err != nil {
		return nil, storeErr(err, "device code "+req.DeviceCode)
	}
	s.audit.Record(actor, model.AuditCreate, "devices", device.ID, nil, device)
	return device, nil
}

func (s *deviceService) Update(id uuid.UUID, req *DeviceRequest, actor Actor) (*model.Device, error) {
	device, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	before := *device
	if err := s.apply(device, req); err != nil {
		return nil, err
	}
	device.UpdatedBy = actor.ID.String()
	if err := s.deviceRepo.Update(device); err != nil {
		return nil, storeErr(err, "device code "+req.DeviceCode)
	}
	s.audit.Record(actor, model.AuditUpdate, "devices", device.ID, before, device)
	return device, nil
}

func (s *deviceService) Delete(id uuid.UUID, actor Actor) error {
	device, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.deviceRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "device")
	}
	s.audit.Record(actor, model.AuditDelete, "devices", id, device, nil)
	return nil
}

func (s *deviceService) Get(id uuid.UUID) (*model.Device, error) {
	device, err := s.deviceRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "device")
	}
	return device, nil
}

func (s *deviceService) List(groupID *uuid.UUID) ([]model.Device, error) {
	scope := repository.AllGroups
	if groupID != nil {
		scope = repository.OnlyGroup(groupID)
	}
	return s.deviceRepo.FindAll(scope)
}
