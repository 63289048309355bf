package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/handler"
	"github.com/medreminder/internal/store"
	"github.com/rs/zerolog"
)

const sessionName = "medreminder_session"

// Config 汇总路由需要的依赖
type Config struct {
	SessionSecret string
	Repository    *store.Repository
	Hub           *events.Hub
	Options       handler.Options
	Logger        zerolog.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery(cfg.Logger), RequestLogger(cfg.Logger))

	// 配置会话中间件，用于保存语言偏好
	secret := cfg.SessionSecret
	if secret == "" {
		secret = "medreminder-dev-secret"
	}
	cookieStore := cookie.NewStore([]byte(secret))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: 365 * 24 * 60 * 60, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, cookieStore))

	opts := cfg.Options
	opts.Logger = cfg.Logger
	api := handler.NewAPI(cfg.Repository, cfg.Hub, opts)
	r.Use(api.LocaleMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api.RegisterRoutes(r.Group("/api"))

	return r
}
