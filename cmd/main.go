package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Abdulrehman1978/visionflow/config"
	"github.com/Abdulrehman1978/visionflow/controllers"
	"github.com/Abdulrehman1978/visionflow/routes"
	"github.com/Abdulrehman1978/visionflow/services"
	"github.com/Abdulrehman1978/visionflow/ws"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Không tìm thấy file .env")
	}

	config.InitDB()
	config.InitSessionStore()
	controllers.InitOAuth()

	ctx := context.Background()

	// Thiếu API key thì dừng ngay lúc khởi động, không đợi request đầu tiên
	gemini, err := services.NewGeminiClient(ctx, services.GeminiConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		log.Fatal("Không khởi tạo được Gemini client: ", err)
	}
	defer gemini.Close()

	youtube, err := services.NewYouTubeClient(ctx, services.YouTubeConfig{
		APIKey: os.Getenv("YOUTUBE_API_KEY"),
	})
	if err != nil {
		log.Fatal("Không khởi tạo được YouTube client: ", err)
	}

	controllers.InitCourseGenerator(&services.CourseGenerator{
		DB:     config.DB,
		AI:     gemini,
		Videos: youtube,
		Notify: func(requestID, stage string, progress float64) {
			ws.SendGenerationUpdate(requestID, stage, progress, "", "")
		},
	})

	r := gin.Default()

	//Bật CORS
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontend},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	// Gọi SetupRouter để đăng ký route
	r = routes.SetupRouter(r, config.DB)

	// Route test server
	r.GET("/", func(c *gin.Context) {
		c.String(200, "VisionFlow server is running")
	})

	// Lấy PORT từ env
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // mặc định nếu không có PORT
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}
