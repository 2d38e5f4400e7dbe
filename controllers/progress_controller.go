package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Abdulrehman1978/visionflow/models"
)

type UpdateProgressInput struct {
	LessonID  uint `json:"lesson_id" binding:"required"`
	Completed bool `json:"completed"`
}

// UpdateProgress upsert tiến độ theo cặp (user_id, lesson_id).
// Gọi lại nhiều lần với cùng bài học chỉ cập nhật dòng cũ, không nhân bản.
func UpdateProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	db := c.MustGet("db").(*gorm.DB)

	var input UpdateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Bài học phải tồn tại trước khi ghi tiến độ
	var lesson models.Lesson
	if err := db.First(&lesson, input.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bài học không tồn tại"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi truy vấn bài học"})
		return
	}

	progress := models.UserProgress{
		UserID:    userID,
		LessonID:  input.LessonID,
		Completed: input.Completed,
	}
	if input.Completed {
		now := time.Now()
		progress.CompletedAt = &now
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(&progress).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lưu tiến độ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Đã cập nhật tiến độ",
		"lesson_id": input.LessonID,
		"completed": input.Completed,
	})
}

// GetProgress trả toàn bộ tiến độ của user đang đăng nhập.
func GetProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	db := c.MustGet("db").(*gorm.DB)

	var entries []models.UserProgress
	if err := db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi truy vấn tiến độ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": entries})
}

// GetCourseProgress tính phần trăm hoàn thành của user trong một khóa học.
func GetCourseProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	db := c.MustGet("db").(*gorm.DB)
	courseID := c.Param("id")

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Khóa học không tồn tại"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi truy vấn khóa học"})
		return
	}

	var total int64
	err := db.Model(&models.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&total).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi đếm bài học"})
		return
	}

	var completed int64
	err = db.Model(&models.UserProgress{}).
		Joins("JOIN lessons ON lessons.id = user_progresses.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ? AND user_progresses.user_id = ? AND user_progresses.completed = ?",
			courseID, userID, true).
		Count(&completed).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi đếm tiến độ"})
		return
	}

	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"course_id": courseID,
		"total":     total,
		"completed": completed,
		"percent":   percent,
	})
}
