package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an employee account. Login is by username.
type User struct {
	BaseModel
	Username      string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username" validate:"required"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName      string     `gorm:"type:varchar(255);not null" json:"full_name" validate:"required"`
	BirthDate     *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Position      Role       `gorm:"type:varchar(30);not null;index" json:"position" validate:"required,role"`
	Address       string     `gorm:"type:text" json:"address"`
	StartWorkDate *time.Time `gorm:"type:date" json:"start_work_date,omitempty"`
	GroupID       *uuid.UUID `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Group         *Group     `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	AvatarURL     *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	TokenVersion  string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`                // For user presence
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name"`
	BirthDate     *string    `json:"birth_date,omitempty"`
	Position      Role       `json:"position"`
	Address       string     `json:"address"`
	StartWorkDate *string    `json:"start_work_date,omitempty"`
	GroupID       *uuid.UUID `json:"group_id,omitempty"`
	GroupName     string     `json:"group_name,omitempty"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
	IsActive      bool       `json:"is_active"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		FullName:      u.FullName,
		BirthDate:     formatOptionalDate(u.BirthDate),
		Position:      u.Position,
		Address:       u.Address,
		StartWorkDate: formatOptionalDate(u.StartWorkDate),
		GroupID:       u.GroupID,
		AvatarURL:     u.AvatarURL,
		IsActive:      u.IsActive,
		LastSeenAt:    u.LastSeenAt,
	}
	if u.Group != nil {
		resp.GroupName = u.Group.GroupName
	}
	return resp
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
