package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// MaxLoginAttempts failed logins in a row deactivate the account.
const MaxLoginAttempts = 5

type User struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Password      string     `json:"-" gorm:"not null"`
	DisplayName   string     `json:"display_name"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	Role          string     `json:"role" gorm:"not null;default:'user'"`
	IsActive      bool       `json:"is_active" gorm:"not null;default:true"`
	LoginAttempts int        `json:"login_attempts" gorm:"not null;default:0"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type AdminUpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Role        *string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive    *bool   `json:"is_active"`
}
