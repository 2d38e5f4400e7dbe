package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulrehman1978/visionflow/config"
)

// RequireLogin đọc session cookie và gắn user_id/role vào context.
// Không có session hợp lệ thì chặn request với 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := config.Store.Get(c.Request, config.SessionName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session không hợp lệ"})
			c.Abort()
			return
		}

		userID, ok := session.Values["user_id"].(uint)
		if !ok || userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bạn cần đăng nhập để thực hiện thao tác này"})
			c.Abort()
			return
		}

		role, _ := session.Values["role"].(string)
		if role == "" {
			role = "user"
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}
