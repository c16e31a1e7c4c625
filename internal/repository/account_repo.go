package repository

import (
	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(account *model.AffiliateAccount) error
	Update(account *model.AffiliateAccount) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.AffiliateAccount, error)
	FindByUsername(username string) (*model.AffiliateAccount, error)
	FindAll(scope GroupScope) ([]model.AffiliateAccount, error)
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db}
}

func (r *accountRepo) Create(account *model.AffiliateAccount) error {
	return r.db.Create(account).Error
}

func (r *accountRepo) Update(account *model.AffiliateAccount) error {
	account.Group = nil
	return r.db.Save(account).Error
}

func (r *accountRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.AffiliateAccount{}, id, deletedBy)
}

func (r *accountRepo) FindByID(id uuid.UUID) (*model.AffiliateAccount, error) {
	var account model.AffiliateAccount
	if err := r.db.Preload("Group").First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) FindByUsername(username string) (*model.AffiliateAccount, error) {
	var account model.AffiliateAccount
	if err := r.db.Where("username = ?", username).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) FindAll(scope GroupScope) ([]model.AffiliateAccount, error) {
	var accounts []model.AffiliateAccount
	q := scope.apply(r.db.Preload("Group"), "group_id")
	err := q.Order("platform ASC, username ASC").Find(&accounts).Error
	return accounts, err
}
