package config

import (
	"log"
	"os"

	"github.com/gorilla/sessions"
)

const SessionName = "visionflow_session"

var Store *sessions.CookieStore

func InitSessionStore() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("Thiếu SESSION_SECRET trong biến môi trường")
	}

	Store = sessions.NewCookieStore([]byte(secret))
	Store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   86400 * 7, // 7 ngày
	}
}
