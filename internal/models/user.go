// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role determines what a user may do. Post create/edit/delete is
// restricted to RoleAdmin; everyone else is a reader.
type Role string

const (
	RoleReader Role = "reader"
	RoleAdmin  Role = "admin"
)

// User represents an account on the blog.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	// DisplayName is what shows next to posts and comments; it defaults
	// to the username at registration.
	DisplayName string         `json:"display_name"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Role        Role           `gorm:"type:varchar(16);not null;default:reader" json:"role"`
	Avatar      string         `json:"avatar"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Posts       []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	Comments    []Comment      `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
