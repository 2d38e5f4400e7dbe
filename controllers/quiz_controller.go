package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abdulrehman1978/visionflow/models"
)

// GetLessonQuiz trả quiz của một bài học, không kèm đáp án đúng.
func GetLessonQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	lessonID := c.Param("id")

	var quiz models.Quiz
	err := db.Where("lesson_id = ?", lessonID).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bài học này chưa có quiz"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi truy vấn quiz"})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

type AnswerQuizInput struct {
	Answer string `json:"answer" binding:"required"`
}

// AnswerQuiz chấm câu trả lời, so khớp chính xác chuỗi đáp án.
func AnswerQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	quizID := c.Param("id")

	var input AnswerQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var quiz models.Quiz
	err := db.First(&quiz, "id = ?", quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz không tồn tại"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi truy vấn quiz"})
		return
	}

	correct := input.Answer == quiz.CorrectAnswer
	c.JSON(http.StatusOK, gin.H{
		"correct":        correct,
		"correct_answer": quiz.CorrectAnswer,
	})
}
