package models

type Lesson struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ModuleID   uint   `gorm:"not null;uniqueIndex:idx_lessons_module_order" json:"module_id"`
	Title      string `gorm:"size:200;not null" json:"title"`
	VideoID    string `gorm:"size:100;not null" json:"video_id"` // YouTube video ID, không phải URL đầy đủ
	Duration   string `gorm:"size:50" json:"duration"`
	OrderIndex int    `gorm:"not null;uniqueIndex:idx_lessons_module_order" json:"order_index"` // bắt đầu từ 1

	Quiz     *Quiz             `json:"quiz,omitempty"`
	Practice *PracticeQuestion `json:"practice,omitempty"`
}
