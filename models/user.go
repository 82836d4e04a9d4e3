package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:180;not null" json:"email"`
	Name         string     `gorm:"size:180" json:"name"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	Role         string     `gorm:"size:30;default:admin" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
