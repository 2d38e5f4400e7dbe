package models

type Module struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CourseID   string `gorm:"size:100;not null;uniqueIndex:idx_modules_course_order" json:"course_id"`
	Title      string `gorm:"size:200;not null" json:"title"`
	OrderIndex int    `gorm:"not null;uniqueIndex:idx_modules_course_order" json:"order_index"` // bắt đầu từ 1

	Lessons []Lesson `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}
