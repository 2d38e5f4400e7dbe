package models

import (
	"gorm.io/datatypes"
)

// Bài thực hành gắn với từng lesson, dữ liệu test case và gợi ý lưu dạng JSON.
type PracticeQuestion struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	LessonID         uint           `gorm:"not null;index" json:"lesson_id"`
	ProblemStatement string         `gorm:"type:text;not null" json:"problem_statement"`
	TestCases        datatypes.JSON `json:"test_cases"` // [{"input": ..., "expected": ...}]
	Hints            datatypes.JSON `json:"hints"`      // ["gợi ý 1", "gợi ý 2"]
}
