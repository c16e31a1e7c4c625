package service

import (
	"errors"
	"fmt"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrDeleteSelf     = errors.New("you cannot delete your own account")
)

type UserService interface {
	CreateUser(req *CreateUserRequest, actor Actor) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor Actor) (*model.User, error)
	DeleteUser(userID uuid.UUID, actor Actor) error
	GetAllUsers(actor Actor) ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Username      string     `json:"username" validate:"required,min=3,max=50"`
	Password      string     `json:"password" validate:"required,min=6"`
	FullName      string     `json:"full_name" validate:"required"`
	BirthDate     *string    `json:"birth_date"` // Format: YYYY-MM-DD
	Position      model.Role `json:"position" validate:"role"`
	Address       string     `json:"address"`
	StartWorkDate *string    `json:"start_work_date"` // Format: YYYY-MM-DD
	GroupID       *uuid.UUID `json:"group_id"`
	AvatarURL     *string    `json:"avatar_url" validate:"omitempty,url"`
}

type UpdateUserRequest struct {
	Username      string     `json:"username" validate:"required,min=3,max=50"`
	Password      *string    `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName      string     `json:"full_name" validate:"required"`
	BirthDate     *string    `json:"birth_date"`
	Position      model.Role `json:"position" validate:"role"`
	Address       string     `json:"address"`
	StartWorkDate *string    `json:"start_work_date"`
	GroupID       *uuid.UUID `json:"group_id"`
	AvatarURL     *string    `json:"avatar_url" validate:"omitempty,url"`
	IsActive      *bool      `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
	audit    AuditService
}

func NewUserService(userRepo repository.UserRepository, audit AuditService) UserService {
	return &userService{
		userRepo: userRepo,
		audit:    audit,
	}
}

func (s *userService) CreateUser(req *CreateUserRequest, actor Actor) (*model.User, error) {
	// 1. Validate request
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Check if username already exists
	if existing, _ := s.userRepo.FindByUsername(req.Username); existing != nil {
		return nil, ErrUsernameExists
	}

	// 3. Parse dates if provided
	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	startWorkDate, err := parseOptionalDate(req.StartWorkDate)
	if err != nil {
		return nil, err
	}

	// 4. Create user
	user := &model.User{
		Username:      req.Username,
		FullName:      req.FullName,
		BirthDate:     birthDate,
		Position:      req.Position,
		Address:       req.Address,
		StartWorkDate: startWorkDate,
		GroupID:       req.GroupID,
		AvatarURL:     req.AvatarURL,
		IsActive:      true,
	}
	user.CreatedBy = actor.ID.String()
	user.UpdatedBy = actor.ID.String()

	// 5. Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 6. Save to database
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(storeErr(err, "user"), ErrConflict) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	s.audit.Record(actor, model.AuditCreate, "users", user.ID, nil, user.ToResponse())
	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor Actor) (*model.User, error) {
	// 1. Validate request
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Find existing user
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	before := user.ToResponse()

	// 3. Check if username is being changed and already exists
	if req.Username != user.Username {
		if existing, _ := s.userRepo.FindByUsername(req.Username); existing != nil {
			return nil, ErrUsernameExists
		}
	}

	// 4. Parse dates
	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	startWorkDate, err := parseOptionalDate(req.StartWorkDate)
	if err != nil {
		return nil, err
	}

	// 5. Update user fields
	user.Username = req.Username
	user.FullName = req.FullName
	user.BirthDate = birthDate
	user.Position = req.Position
	user.Address = req.Address
	user.StartWorkDate = startWorkDate
	user.GroupID = req.GroupID
	user.AvatarURL = req.AvatarURL
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = actor.ID.String()

	// 6. Update password if provided
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	// 7. Save to database
	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(storeErr(err, "user"), ErrConflict) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	// 8. Reload and return
	updated, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditUpdate, "users", userID, before, updated.ToResponse())
	return updated, nil
}

func (s *userService) DeleteUser(userID uuid.UUID, actor Actor) error {
	if userID == actor.ID {
		return ErrDeleteSelf
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if err := s.userRepo.Delete(userID, actor.ID.String()); err != nil {
		return err
	}
	s.audit.Record(actor, model.AuditDelete, "users", userID, user.ToResponse(), nil)
	return nil
}

func (s *userService) GetAllUsers(actor Actor) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(actor.Scope())
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}
