package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is shared by both apps; app_id keeps each product's accounts separate.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID     string         `gorm:"size:50;not null;uniqueIndex:idx_users_app_email" json:"-"`
	Email     string         `gorm:"not null;size:255;uniqueIndex:idx_users_app_email" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"size:100" json:"name"`
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	Bio       string         `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL string         `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
