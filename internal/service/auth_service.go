package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/rbac"
	"go-affiliate-ops/internal/repository"
	"go-affiliate-ops/pkg/jwt"
)

// SessionIdleTimeout is how long a session survives without a heartbeat
const SessionIdleTimeout = 5 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error
	ValidateToken(tokenString string) (*Session, error)
	Heartbeat(userID uuid.UUID) error
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token       string                        `json:"token"`
	User        model.UserResponse            `json:"user"`
	Permissions map[model.Page][]model.Action `json:"permissions"` // Flat per-page actions for the frontend
}

// Session is what a valid token resolves to
type Session struct {
	Actor Actor
	User  model.UserResponse
}

type authService struct {
	userRepo  repository.UserRepository
	evaluator *rbac.Evaluator
	notifier  Notifier
}

func NewAuthService(userRepo repository.UserRepository, evaluator *rbac.Evaluator, notifier Notifier) AuthService {
	return &authService{
		userRepo:  userRepo,
		evaluator: evaluator,
		notifier:  notifier,
	}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	if err := validate(&LoginRequest{Username: username, Password: password}); err != nil {
		return nil, err
	}

	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Single Session: token version baru membatalkan token lama
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	// LastSeenAt di-set supaya tidak langsung timeout
	if err := s.userRepo.UpdateLastSeen(user.ID); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	// 5. Generate JWT token with TokenVersion
	token, err := jwt.GenerateToken(user.ID, user.Username, user.FullName, string(user.Position), user.GroupID, newTokenVersion)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResponse{
		Token:       token,
		User:        user.ToResponse(),
		Permissions: s.evaluator.Permissions(user.Position),
	}, nil
}

func (s *authService) ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if !user.CheckPassword(req.OldPassword) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

func (s *authService) ValidateToken(tokenString string) (*Session, error) {
	// 1. Validate JWT token
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 2. Find user by ID from token claims
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 3. Check if user is still active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 4. Strict session (TokenVersion)
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionReplaced
	}

	// 5. Inactivity: tanpa heartbeat lebih dari 5 menit dianggap logout
	if user.LastSeenAt == nil || timeNow().Sub(*user.LastSeenAt) > SessionIdleTimeout {
		return nil, ErrSessionTimeout
	}

	// Role dan group diambil dari DB, bukan dari claims
	return &Session{
		Actor: Actor{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.FullName,
			Role:     user.Position,
			GroupID:  user.GroupID,
		},
		User: user.ToResponse(),
	}, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	// 1. Update timestamp di DB
	if err := s.userRepo.UpdateLastSeen(userID); err != nil {
		return err
	}

	// 2. Broadcast status "online" ke semua client
	go broadcast(s.notifier, map[string]interface{}{
		"type":         "user_status_update",
		"user_id":      userID.String(),
		"status":       "online",
		"last_seen_at": timeNow(),
	})
	return nil
}
