package models

import (
	"time"
)

// Course dùng slug làm khóa chính (vd: "advanced_backend_systems_with_rust"),
// sinh từ tiêu đề do AI trả về hoặc đặt tay khi seed.
type Course struct {
	ID           string    `gorm:"size:100;primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	ThumbnailURL string    `gorm:"size:255" json:"thumbnail"`
	Level        string    `gorm:"size:50" json:"level"` // Beginner | Intermediate | Advanced
	IsGenerated  bool      `gorm:"default:false" json:"is_generated"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Modules []Module `gorm:"constraint:OnDelete:CASCADE" json:"modules,omitempty"`
}
