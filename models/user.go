package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin" // Quản trị hệ thống
	RoleUser  UserRole = "user"  // Người học
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GoogleID  *string   `gorm:"size:100;uniqueIndex" json:"-"`
	Email     string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:150" json:"name"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Password  string    `gorm:"type:text" json:"-"` // rỗng nếu đăng nhập bằng Google
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Progress []UserProgress `json:"-"`
}
