package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abdulrehman1978/visionflow/controllers"
	"github.com/Abdulrehman1978/visionflow/middleware"
	"github.com/Abdulrehman1978/visionflow/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))
	api.GET("/health", controllers.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.GET("/login", controllers.GoogleLogin)
		auth.GET("/callback", controllers.GoogleCallback)
		auth.POST("/register", controllers.Register)
		auth.POST("/password-login", controllers.PasswordLogin)
		auth.GET("/logout", controllers.Logout)

		auth.GET("/me", middleware.RequireLogin(), controllers.Me)
		auth.GET("/ws-ticket", middleware.RequireLogin(), controllers.WSTicket)
	}

	// Danh sách và chi tiết khóa học công khai, ai cũng xem được
	api.GET("/courses", controllers.GetCourses)
	api.GET("/courses/:id", controllers.GetCourseDetail)
	api.GET("/lessons/:id", controllers.GetLessonDetail)
	api.GET("/lessons/:id/quiz", controllers.GetLessonQuiz)

	user := api.Group("/")
	{
		user.Use(middleware.RequireLogin())

		user.POST("/courses/generate", controllers.GenerateCourse)

		user.POST("/progress", controllers.UpdateProgress)
		user.GET("/progress", controllers.GetProgress)
		user.GET("/courses/:id/progress", controllers.GetCourseProgress)

		user.POST("/quiz/:id/answer", controllers.AnswerQuiz)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.RequireRoles("admin"))

		admin.DELETE("/courses/:id", controllers.DeleteCourse)
	}

	r.GET("/ws/generation/:id", ws.HandleGenerationWebSocket)
	r.GET("/ws/status", ws.HandleGlobalWebSocket)

	return r
}
