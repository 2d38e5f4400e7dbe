package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulrehman1978/visionflow/services"
	"github.com/Abdulrehman1978/visionflow/ws"
)

// CourseCreator là phần pipeline mà controller cần, tách interface để test.
type CourseCreator interface {
	GenerateCourse(ctx context.Context, requestID, topic string) (string, error)
}

// courseGen được inject lúc khởi động qua InitCourseGenerator.
var courseGen CourseCreator

func InitCourseGenerator(g CourseCreator) {
	courseGen = g
}

type GenerateCourseInput struct {
	Topic     string `json:"topic" binding:"required,max=100"`
	RequestID string `json:"request_id"` // tùy chọn, dùng theo dõi tiến độ qua WS
}

// GenerateCourse nhận chủ đề, chạy pipeline và trả về khóa học đã lưu.
// Mã lỗi phân theo loại: 503 upstream quá tải, 502 output AI hỏng, 500 còn lại.
func GenerateCourse(c *gin.Context) {
	if courseGen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Tính năng tạo khóa học chưa sẵn sàng"})
		return
	}

	var input GenerateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courseID, err := courseGen.GenerateCourse(c.Request.Context(), input.RequestID, input.Topic)
	if err != nil {
		status, msg := classifyGenerateError(err)
		if input.RequestID != "" {
			ws.SendGenerationUpdate(input.RequestID, "failed", 0, "", msg)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if input.RequestID != "" {
		ws.SendGenerationUpdate(input.RequestID, "completed", 1.0, courseID, "")
	}
	ws.BroadcastCourseListChanged()

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Tạo khóa học thành công",
		"course_id": courseID,
	})
}

func classifyGenerateError(err error) (int, string) {
	var genErr *services.GenAIError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case services.GenAIRateLimited:
			return http.StatusServiceUnavailable, "Hệ thống AI đang quá tải, vui lòng thử lại sau"
		case services.GenAIUnavailable:
			return http.StatusServiceUnavailable, "Dịch vụ AI tạm thời không khả dụng"
		default:
			return http.StatusInternalServerError, "Lỗi không xác định từ dịch vụ AI"
		}
	}

	var parseErr *services.SyllabusParseError
	if errors.As(err, &parseErr) || errors.Is(err, services.ErrMissingSyllabusField) {
		return http.StatusBadGateway, "AI trả về đề cương không hợp lệ, vui lòng thử lại"
	}

	return http.StatusInternalServerError, "Lỗi khi tạo khóa học"
}
