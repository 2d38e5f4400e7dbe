package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abdulrehman1978/visionflow/models"
)

// GetCourses trả danh sách khóa học cho trang chủ.
func GetCourses(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var courses []models.Course
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi truy vấn danh sách khóa học"})
		return
	}

	result := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		result = append(result, gin.H{
			"id":            course.ID,
			"title":         course.Title,
			"description":   course.Description,
			"thumbnail_url": course.ThumbnailURL,
			"level":         course.Level,
			"is_generated":  course.IsGenerated,
		})
	}

	c.JSON(http.StatusOK, gin.H{"courses": result})
}

// GetCourseDetail trả cấu trúc lồng nhau course → modules → topics,
// sắp theo order_index để frontend render đúng thứ tự đề cương.
func GetCourseDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	courseID := c.Param("id")

	var course models.Course
	err := db.
		Preload("Modules", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index")
		}).
		Preload("Modules.Lessons", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index")
		}).
		First(&course, "id = ?", courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Khóa học không tồn tại"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi truy vấn khóa học"})
		return
	}

	modules := make([]gin.H, 0, len(course.Modules))
	for _, m := range course.Modules {
		topics := make([]gin.H, 0, len(m.Lessons))
		for _, l := range m.Lessons {
			topics = append(topics, gin.H{
				"id":       l.ID,
				"name":     l.Title,
				"video_id": l.VideoID,
				"duration": l.Duration,
			})
		}
		modules = append(modules, gin.H{
			"title":  m.Title,
			"topics": topics,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            course.ID,
		"title":         course.Title,
		"description":   course.Description,
		"thumbnail_url": course.ThumbnailURL,
		"level":         course.Level,
		"is_generated":  course.IsGenerated,
		"modules":       modules,
	})
}

// DeleteCourse xóa một khóa học kèm toàn bộ module/lesson (cascade).
// Chỉ dành cho admin, phục vụ dọn các khóa học sinh hỏng.
func DeleteCourse(c *gin.Context) {
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

	err := db.Transaction(func(tx *gorm.DB) error {
		lessonIDs := func() *gorm.DB {
			return tx.Model(&models.Lesson{}).Select("lessons.id").
				Joins("JOIN modules ON modules.id = lessons.module_id").
				Where("modules.course_id = ?", courseID)
		}

		// Quiz/practice/progress không có FK cascade nên xóa tay trước
		if err := tx.Where("lesson_id IN (?)", lessonIDs()).Delete(&models.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id IN (?)", lessonIDs()).Delete(&models.PracticeQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id IN (?)", lessonIDs()).Delete(&models.UserProgress{}).Error; err != nil {
			return err
		}

		moduleIDs := tx.Model(&models.Module{}).Select("id").Where("course_id = ?", courseID)
		if err := tx.Where("module_id IN (?)", moduleIDs).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Module{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi xóa khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa khóa học", "course_id": courseID})
}

// GetLessonDetail trả một bài học kèm quiz và bài tập thực hành (nếu có).
func GetLessonDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	lessonID := c.Param("id")

	var lesson models.Lesson
	err := db.
		Preload("Quiz").
		Preload("Practice").
		First(&lesson, "id = ?", lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bài học không tồn tại"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi truy vấn bài học"})
		return
	}

	resp := gin.H{
		"id":          lesson.ID,
		"module_id":   lesson.ModuleID,
		"title":       lesson.Title,
		"video_id":    lesson.VideoID,
		"duration":    lesson.Duration,
		"order_index": lesson.OrderIndex,
	}
	if lesson.Quiz != nil {
		resp["quiz"] = lesson.Quiz
	}
	if lesson.Practice != nil {
		resp["practice"] = lesson.Practice
	}

	c.JSON(http.StatusOK, resp)
}
