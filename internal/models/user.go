package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// User is a login identity. Users are deactivated, never deleted.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:120;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:20;not null;default:'operator'"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
