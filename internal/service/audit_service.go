package service

import (
	"encoding/json"
	"log"
	"time"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const defaultAuditLimit = 100

type AuditService interface {
	// Record appends an entry; a failure is logged and never fails the caller's operation
	Record(actor Actor, action model.AuditAction, table string, recordID uuid.UUID, oldData, newData interface{})
	List(table string, limit int) ([]model.AuditEntry, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(actor Actor, action model.AuditAction, table string, recordID uuid.UUID, oldData, newData interface{}) {
	entry := &model.AuditEntry{
		ID:        uuid.New(),
		Action:    action,
		Table:     table,
		RecordID:  recordID.String(),
		OldData:   snapshot(oldData),
		NewData:   snapshot(newData),
		Timestamp: time.Now(),
	}
	if actor.ID != uuid.Nil {
		id := actor.ID
		entry.UserID = &id
	}
	if err := s.auditRepo.Create(entry); err != nil {
		log.Printf("WARNING: audit %s %s/%s failed: %v", action, table, recordID, err)
	}
}

func (s *auditService) List(table string, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultAuditLimit
	}
	return s.auditRepo.FindAll(repository.AuditFilter{Table: table, Limit: limit})
}

func snapshot(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("WARNING: audit snapshot: %v", err)
		return nil
	}
	return datatypes.JSON(data)
}
