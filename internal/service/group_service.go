package service

import (
	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
)

type GroupService interface {
	Create(req *GroupRequest, actor Actor) (*model.Group, error)
	Update(id uuid.UUID, req *GroupRequest, actor Actor) (*model.Group, error)
	Delete(id uuid.UUID, actor Actor) error
	List() ([]model.Group, error)
}

type GroupRequest struct {
	GroupName string `json:"group_name" validate:"required,max=100"`
}

type groupService struct {
	groupRepo repository.GroupRepository
	audit     AuditService
}

func NewGroupService(groupRepo repository.GroupRepository, audit AuditService) GroupService {
	return &groupService{groupRepo: groupRepo, audit: audit}
}

func (s *groupService) Create(req *GroupRequest, actor Actor) (*model.Group, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	group := &model.Group{GroupName: req.GroupName}
	group.CreatedBy = actor.ID.String()
	group.UpdatedBy = actor.ID.String()
	if err := s.groupRepo.Create(group); err != nil {
		return nil, storeErr(err, "group "+req.GroupName)
	}
	s.audit.Record(actor, model.AuditCreate, "groups", group.ID, nil, group)
	return group, nil
}

func (s *groupService) Update(id uuid.UUID, req *GroupRequest, actor Actor) (*model.Group, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	group, err := s.groupRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "group")
	}
	before := *group
	group.GroupName = req.GroupName
	group.UpdatedBy = actor.ID.String()
	if err := s.groupRepo.Update(group); err != nil {
		return nil, storeErr(err, "group "+req.GroupName)
	}
	s.audit.Record(actor, model.AuditUpdate, "groups", group.ID, before, group)
	return group, nil
}

func (s *groupService) Delete(id uuid.UUID, actor Actor) error {
	group, err := s.groupRepo.FindByID(id)
	if err != nil {
		return storeErr(err, "group")
	}
	if err := s.groupRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "group")
	}
	s.audit.Record(actor, model.AuditDelete, "groups", id, group, nil)
	return nil
}

func (s *groupService) List() ([]model.Group, error) {
	return s.groupRepo.FindAll()
}
