package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusPendingVerification UserStatus = "PENDING_VERIFICATION"
	UserStatusActive              UserStatus = "ACTIVE"
	UserStatusSuspended           UserStatus = "SUSPENDED"
	UserStatusInactive            UserStatus = "INACTIVE"
)

type User struct {
	ID           string     `gorm:"type:varchar(36);primaryKey"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	DisplayName  string     `gorm:"type:varchar(100)"`
	FirstName    string     `gorm:"type:varchar(100)"`
	LastName     string     `gorm:"type:varchar(100)"`
	Status       UserStatus `gorm:"type:varchar(30);not null;default:'PENDING_VERIFICATION'"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}

// 認証済みとして買い物できる状態か（未認証メールも許可）
func (u User) CanShop() bool {
	return u.Status == UserStatusActive || u.Status == UserStatusPendingVerification
}

// 監査ログなどに出す名前
func (u User) Name() string {
	if n := strings.TrimSpace(u.DisplayName); n != "" {
		return n
	}
	if n := strings.TrimSpace(u.FirstName + " " + u.LastName); n != "" {
		return n
	}
	return "Unknown"
}
