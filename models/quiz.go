package models

import (
	"gorm.io/datatypes"
)

// Câu hỏi trắc nghiệm gắn với từng lesson (dữ liệu seed hoặc nhập tay).
type Quiz struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	LessonID      uint           `gorm:"not null;index" json:"lesson_id"`
	Question      string         `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSON `json:"options"` // mảng 4 lựa chọn
	CorrectAnswer string         `gorm:"size:255;not null" json:"-"`
}
