package service

import (
	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
)

type AccountService interface {
	Create(req *AccountRequest, actor Actor) (*model.AffiliateAccount, error)
	Update(id uuid.UUID, req *AccountRequest, actor Actor) (*model.AffiliateAccount, error)
	Delete(id uuid.UUID, actor Actor) error
	Get(id uuid.UUID) (*model.AffiliateAccount, error)
	List(groupID *uuid.UUID) ([]model.AffiliateAccount, error)
}

type AccountRequest struct {
	Platform      model.Platform      `json:"platform" validate:"required,oneof=shopee tiktok"`
	Email         string              `json:"email" validate:"omitempty,email"`
	Username      string              `json:"username" validate:"required"`
	PhoneNumber   string              `json:"phone_number"`
	AccountStatus model.AccountStatus `json:"account_status" validate:"omitempty,oneof=active temp_banned perm_banned"`
	DataStatus    model.DataStatus    `json:"data_status" validate:"omitempty,oneof=empty pending rejected verified"`
	Notes         *string             `json:"notes"`
	GroupID       *uuid.UUID          `json:"group_id"`
}

type accountService struct {
	accountRepo repository.AccountRepository
	audit       AuditService
}

func NewAccountService(accountRepo repository.AccountRepository, audit AuditService) AccountService {
	return &accountService{accountRepo: accountRepo, audit: audit}
}

func (s *accountService) apply(account *model.AffiliateAccount, req *AccountRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	account.Platform = req.Platform
	account.Email = req.Email
	account.Username = req.Username
	account.PhoneNumber = req.PhoneNumber
	account.AccountStatus = req.AccountStatus
	if account.AccountStatus == "" {
		account.AccountStatus = model.AccountActive
	}
	account.DataStatus = req.DataStatus
	if account.DataStatus == "" {
		account.DataStatus = model.DataEmpty
	}
	account.Notes = req.Notes
	account.GroupID = req.GroupID
	return nil
}

func (s *accountService) Create(req *AccountRequest, actor Actor) (*model.AffiliateAccount, error) {
	account := &model.AffiliateAccount{}
	if err := s.apply(account, req); err != nil {
		return nil, err
	}
	account.CreatedBy = actor.ID.String()
	account.UpdatedBy = actor.ID.String()
	if err := s.accountRepo.Create(account); err != nil {
		return nil, storeErr(err, "account username "+req.Username)
	}
	s.audit.Record(actor, model.AuditCreate, "affiliate_accounts", account.ID, nil, account)
	return account, nil
}

func (s *accountService) Update(id uuid.UUID, req *AccountRequest, actor Actor) (*model.AffiliateAccount, error) {
	account, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	before := *account
	if err := s.apply(account, req); err != nil {
		return nil, err
	}
	account.UpdatedBy = actor.ID.String()
	if err := s.accountRepo.Update(account); err != nil {
		return nil, storeErr(err, "account username "+req.Username)
	}
	s.audit.Record(actor, model.AuditUpdate, "affiliate_accounts", account.ID, before, account)
	return account, nil
}

func (s *accountService) Delete(id uuid.UUID, actor Actor) error {
	account, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.accountRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "affiliate account")
	}
	s.audit.Record(actor, model.AuditDelete, "affiliate_accounts", id, account, nil)
	return nil
}

func (s *accountService) Get(id uuid.UUID) (*model.AffiliateAccount, error) {
	account, err := s.accountRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "affiliate account")
	}
	return account, nil
}

func (s *accountService) List(groupID *uuid.UUID) ([]model.AffiliateAccount, error) {
	scope := repository.AllGroups
	if groupID != nil {
		scope = repository.OnlyGroup(groupID)
	}
	return s.accountRepo.FindAll(scope)
}
