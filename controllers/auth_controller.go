package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/Abdulrehman1978/visionflow/config"
	"github.com/Abdulrehman1978/visionflow/models"
	"github.com/Abdulrehman1978/visionflow/utils"
)

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// oauthConfig được inject qua InitOAuth để không đọc env rải rác trong handler.
var oauthConfig *oauth2.Config

// InitOAuth dựng config OAuth từ env, gọi một lần lúc khởi động.
func InitOAuth() {
	oauthConfig = &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// ====== HANDLERS ======

// GoogleLogin sinh state chống CSRF, lưu vào session rồi redirect sang Google.
func GoogleLogin(c *gin.Context) {
	if oauthConfig == nil || oauthConfig.ClientID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OAuth chưa được cấu hình"})
		return
	}

	state := uuid.New().String()

	session, _ := config.Store.Get(c.Request, config.SessionName)
	session.Values["oauth_state"] = state
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu session"})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, oauthConfig.AuthCodeURL(state))
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleCallback đổi code lấy token, gọi userinfo, tìm-hoặc-tạo user rồi lưu session.
func GoogleCallback(c *gin.Context) {
	session, _ := config.Store.Get(c.Request, config.SessionName)

	// Kiểm tra state khớp với giá trị đã phát ở bước login
	savedState, _ := session.Values["oauth_state"].(string)
	if savedState == "" || c.Query("state") != savedState {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "State không hợp lệ"})
		return
	}
	delete(session.Values, "oauth_state")

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu mã xác thực từ Google"})
		return
	}

	token, err := oauthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không đổi được mã xác thực"})
		return
	}

	client := oauthConfig.Client(c.Request.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không lấy được thông tin từ Google"})
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không parse được dữ liệu Google"})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	// Tìm theo google_id, chưa có thì tạo mới
	var user models.User
	err = db.Where("google_id = ?", info.ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			GoogleID: &info.ID,
			Email:    info.Email,
			Name:     info.Name,
			Avatar:   info.Picture,
			Role:     models.RoleUser,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo user Google"})
			return
		}

		// Gửi email chào mừng (không chặn luồng)
		go func(email, name string) {
			if err := utils.SendWelcomeEmail(email, name); err != nil {
				log.Println("Lỗi gửi email chào mừng:", err)
			}
		}(user.Email, user.Name)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi truy vấn người dùng"})
		return
	}

	session.Values["user_id"] = user.ID
	session.Values["role"] = string(user.Role)
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu session"})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "/"
	}
	c.Redirect(http.StatusSeeOther, frontend)
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	// Check email tồn tại
	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email đã được sử dụng"})
		return
	}

	// Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể mã hoá mật khẩu"})
		return
	}

	newUser := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tạo người dùng"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Đăng ký thành công",
		"user": gin.H{
			"id":    newUser.ID,
			"email": newUser.Email,
			"name":  newUser.Name,
			"role":  newUser.Role,
		},
	})
}

func PasswordLogin(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email hoặc mật khẩu không đúng"})
		return
	}

	if user.Password == "" {
		// Tài khoản Google, không có mật khẩu
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tài khoản này đăng nhập bằng Google"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email hoặc mật khẩu không đúng"})
		return
	}

	session, _ := config.Store.Get(c.Request, config.SessionName)
	session.Values["user_id"] = user.ID
	session.Values["role"] = string(user.Role)
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Đăng nhập thành công",
		"user": gin.H{
			"id":     user.ID,
			"email":  user.Email,
			"name":   user.Name,
			"avatar": user.Avatar,
			"role":   user.Role,
		},
	})
}

func Logout(c *gin.Context) {
	session, _ := config.Store.Get(c.Request, config.SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể huỷ session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã đăng xuất"})
}

// Me trả thông tin user đang đăng nhập.
func Me(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	db := c.MustGet("db").(*gorm.DB)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Người dùng không tồn tại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"avatar": user.Avatar,
		"role":   user.Role,
	})
}

// WSTicket phát token ngắn hạn để client mở WebSocket.
func WSTicket(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	role := c.GetString("role")

	ticket, err := utils.GenerateWSTicket(userID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
