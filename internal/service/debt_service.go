package service

import (
	"fmt"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DebtService interface {
	Create(req *DebtRequest, actor Actor) (*model.DebtReceivable, error)
	Update(id uuid.UUID, req *DebtRequest, actor Actor) (*model.DebtReceivable, error)
	Delete(id uuid.UUID, actor Actor) error
	List(debtType model.DebtType, status model.PaymentStatus, actor Actor) ([]model.DebtReceivable, error)
	Summary(actor Actor) (*repository.DebtTotals, error)
}

type DebtRequest struct {
	TransactionDate string              `json:"transaction_date" validate:"required"`
	Type            model.DebtType      `json:"type" validate:"required,oneof=debt receivable"`
	Amount          decimal.Decimal     `json:"amount"`
	Description     string              `json:"description" validate:"required"`
	Status          model.PaymentStatus `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	GroupID         *uuid.UUID          `json:"group_id"`
}

type debtService struct {
	debtRepo repository.DebtRepository
	audit    AuditService
}

func NewDebtService(debtRepo repository.DebtRepository, audit AuditService) DebtService {
	return &debtService{debtRepo: debtRepo, audit: audit}
}

func (s *debtService) apply(entry *model.DebtReceivable, req *DebtRequest, actor Actor) error {
	if err := validate(req); err != nil {
		return err
	}
	date, err := parseDate(req.TransactionDate)
	if err != nil {
		return err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return err
	}
	entry.TransactionDate = date
	entry.Type = req.Type
	entry.Amount = req.Amount
	entry.Description = req.Description
	entry.Status = req.Status
	if entry.Status == "" {
		entry.Status = model.PaymentPending
	}
	entry.GroupID = req.GroupID
	if !actor.Role.SeesAllGroups() {
		entry.GroupID = actor.GroupID
	}
	return nil
}

func (s *debtService) Create(req *DebtRequest, actor Actor) (*model.DebtReceivable, error) {
	entry := &model.DebtReceivable{}
	if err := s.apply(entry, req, actor); err != nil {
		return nil, err
	}
	entry.CreatedBy = actor.ID.String()
	entry.UpdatedBy = actor.ID.String()
	if err := s.debtRepo.Create(entry); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditCreate, entry.TableName(), entry.ID, nil, entry)
	return entry, nil
}

func (s *debtService) Update(id uuid.UUID, req *DebtRequest, actor Actor) (*model.DebtReceivable, error) {
	entry, err := s.find(id, actor)
	if err != nil {
		return nil, err
	}
	before := *entry
	if err := s.apply(entry, req, actor); err != nil {
		return nil, err
	}
	entry.UpdatedBy = actor.ID.String()
	if err := s.debtRepo.Update(entry); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditUpdate, entry.TableName(), entry.ID, before, entry)
	return entry, nil
}

func (s *debtService) Delete(id uuid.UUID, actor Actor) error {
	entry, err := s.find(id, actor)
	if err != nil {
		return err
	}
	if err := s.debtRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "debt/receivable")
	}
	s.audit.Record(actor, model.AuditDelete, entry.TableName(), id, entry, nil)
	return nil
}

func (s *debtService) find(id uuid.UUID, actor Actor) (*model.DebtReceivable, error) {
	entry, err := s.debtRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "debt/receivable")
	}
	if !actor.Role.SeesAllGroups() && !sameGroup(entry.GroupID, actor.GroupID) {
		return nil, fmt.Errorf("%w: debt/receivable", ErrNotFound)
	}
	return entry, nil
}

func (s *debtService) List(debtType model.DebtType, status model.PaymentStatus, actor Actor) ([]model.DebtReceivable, error) {
	return s.debtRepo.FindAll(repository.DebtFilter{Type: debtType, Status: status, Scope: actor.Scope()})
}

func (s *debtService) Summary(actor Actor) (*repository.DebtTotals, error) {
	return s.debtRepo.Outstanding(actor.Scope())
}
