package service

import (
	"fmt"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CashflowService interface {
	Create(req *CashflowRequest, actor Actor) (*model.Cashflow, error)
	Update(id uuid.UUID, req *CashflowRequest, actor Actor) (*model.Cashflow, error)
	Delete(id uuid.UUID, actor Actor) error
	Get(id uuid.UUID, actor Actor) (*model.Cashflow, error)
	List(filter CashflowQuery, actor Actor) ([]model.Cashflow, error)
	Summary(filter CashflowQuery, actor Actor) (*CashflowSummary, error)
}

type CashflowRequest struct {
	TransactionDate string              `json:"transaction_date" validate:"required"` // YYYY-MM-DD
	Type            model.CashflowType  `json:"type" validate:"required,oneof=income expense"`
	GroupID         *uuid.UUID          `json:"group_id"`
	Amount          decimal.Decimal     `json:"amount"`
	ProofLink       *string             `json:"proof_link" validate:"omitempty,url"`
	Category        *model.CostCategory `json:"category" validate:"omitempty,oneof=fix_cost variable_cost"`
	Description     string              `json:"description" validate:"required"`
}

// CashflowQuery filters listings; zero month/year means all time
type CashflowQuery struct {
	Month int
	Year  int
	Type  model.CashflowType
}

type CashflowSummary struct {
	repository.CashflowTotals
	Net decimal.Decimal `json:"net"`
}

type cashflowService struct {
	cashflowRepo repository.CashflowRepository
	audit        AuditService
	notifier     Notifier
	invalidate   func()
}

func NewCashflowService(cashflowRepo repository.CashflowRepository, audit AuditService, notifier Notifier, invalidate func()) CashflowService {
	if invalidate == nil {
		invalidate = func() {}
	}
	return &cashflowService{
		cashflowRepo: cashflowRepo,
		audit:        audit,
		notifier:     notifier,
		invalidate:   invalidate,
	}
}

func (s *cashflowService) apply(entry *model.Cashflow, req *CashflowRequest, actor Actor) error {
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
	entry.ProofLink = req.ProofLink
	entry.Description = req.Description

	// Category only applies to expenses
	entry.Category = nil
	if req.Type == model.CashExpense {
		entry.Category = req.Category
	}

	// Scoped users always book into their own group
	entry.GroupID = req.GroupID
	if !actor.Role.SeesAllGroups() {
		entry.GroupID = actor.GroupID
	}
	return nil
}

func (s *cashflowService) Create(req *CashflowRequest, actor Actor) (*model.Cashflow, error) {
	entry := &model.Cashflow{}
	if err := s.apply(entry, req, actor); err != nil {
		return nil, err
	}
	userID := actor.ID
	entry.CreatedByUserID = &userID
	entry.CreatedBy = actor.ID.String()
	entry.UpdatedBy = actor.ID.String()

	if err := s.cashflowRepo.Create(entry); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditCreate, entry.TableName(), entry.ID, nil, entry)
	s.changed("cashflow_created", entry, actor)
	return entry, nil
}

func (s *cashflowService) Update(id uuid.UUID, req *CashflowRequest, actor Actor) (*model.Cashflow, error) {
	entry, err := s.Get(id, actor)
	if err != nil {
		return nil, err
	}
	before := *entry
	if err := s.apply(entry, req, actor); err != nil {
		return nil, err
	}
	entry.UpdatedBy = actor.ID.String()

	if err := s.cashflowRepo.Update(entry); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditUpdate, entry.TableName(), entry.ID, before, entry)
	s.changed("cashflow_updated", entry, actor)
	return entry, nil
}

func (s *cashflowService) Delete(id uuid.UUID, actor Actor) error {
	entry, err := s.Get(id, actor)
	if err != nil {
		return err
	}
	if err := s.cashflowRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "cashflow entry")
	}
	s.audit.Record(actor, model.AuditDelete, entry.TableName(), id, entry, nil)
	s.changed("cashflow_deleted", entry, actor)
	return nil
}

// Get hides entries outside the actor's group
func (s *cashflowService) Get(id uuid.UUID, actor Actor) (*model.Cashflow, error) {
	entry, err := s.cashflowRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "cashflow entry")
	}
	if !actor.Role.SeesAllGroups() && !sameGroup(entry.GroupID, actor.GroupID) {
		return nil, fmt.Errorf("%w: cashflow entry", ErrNotFound)
	}
	return entry, nil
}

func (s *cashflowService) filter(q CashflowQuery, actor Actor) (repository.CashflowFilter, error) {
	f := repository.CashflowFilter{Type: q.Type, Scope: actor.Scope()}
	if q.Month != 0 || q.Year != 0 {
		_, _, period, err := monthPeriod(q.Month, q.Year, timeNow())
		if err != nil {
			return f, err
		}
		f.Period = period
	}
	return f, nil
}

func (s *cashflowService) List(q CashflowQuery, actor Actor) ([]model.Cashflow, error) {
	f, err := s.filter(q, actor)
	if err != nil {
		return nil, err
	}
	return s.cashflowRepo.FindAll(f)
}

func (s *cashflowService) Summary(q CashflowQuery, actor Actor) (*CashflowSummary, error) {
	f, err := s.filter(q, actor)
	if err != nil {
		return nil, err
	}
	f.Type = ""
	totals, err := s.cashflowRepo.Totals(f)
	if err != nil {
		return nil, err
	}
	return &CashflowSummary{CashflowTotals: *totals, Net: totals.Income.Sub(totals.Expense)}, nil
}

func (s *cashflowService) changed(action string, entry *model.Cashflow, actor Actor) {
	s.invalidate()
	go broadcast(s.notifier, map[string]interface{}{
		"type":   "cashflow_changed",
		"action": action,
		"entry": map[string]interface{}{
			"id":               entry.ID,
			"type":             entry.Type,
			"amount":           entry.Amount,
			"transaction_date": entry.TransactionDate.Format(model.DateLayout),
			"group_id":         entry.GroupID,
		},
		"user": map[string]interface{}{
			"id":   actor.ID,
			"name": actor.Name,
		},
		"message": fmt.Sprintf("%s recorded %s of %s", actor.Name, entry.Type, entry.Amount.StringFixed(2)),
	})
}

func sameGroup(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
