package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
)

// ChatPath публичный endpoint чат-ассистента с открытым CORS.
const ChatPath = "/api/chat"

// Handlers набор HTTP хэндлеров приложения.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Chat     *handlers.ChatHandler
	Public   *handlers.PublicHandler
	Services handlers.RouteRegistrar
	Works    handlers.RouteRegistrar
	Tools    handlers.RouteRegistrar
	Posts    handlers.RouteRegistrar
	Settings *handlers.SettingsHandler
	Media    *handlers.MediaHandler
	WS       *handlers.WSHandler
	Health   *handlers.HealthHandler
}

// SetupRouter собирает gin engine со всеми маршрутами.
func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.TokenParser, admins middleware.AdminChecker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SplitCORS(cfg.AllowedOrigins, ChatPath))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	r.GET("/health", h.Health.Health)
	r.StaticFS("/files", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	api.POST("/chat", h.Chat.Chat)

	// Публичный сайт
	api.GET("/services", h.Public.Services)
	api.GET("/works", h.Public.Works)
	api.GET("/tools", h.Public.Tools)
	api.GET("/blog", h.Public.Posts)
	api.GET("/blog/tags", h.Public.Tags)
	api.GET("/blog/:slug", h.Public.Post)
	api.GET("/site", h.Public.Site)
	api.GET("/resume", h.Public.Resume)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/sign-up", h.Auth.SignUp)
		authGroup.POST("/sign-in", h.Auth.SignIn)
		authGroup.GET("/session", middleware.AuthMiddleware(tokens), h.Auth.Session)
	}

	// WebSocket проверяет токен из query сам.
	api.GET("/admin/ws", h.WS.Handle)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens), middleware.RequireAdmin(admins))
	{
		uuidParam := middleware.UUIDValidator("id")

		h.Services.Register(admin.Group("/services"), uuidParam)
		h.Works.Register(admin.Group("/works"), uuidParam)
		h.Tools.Register(admin.Group("/tools"), uuidParam)
		h.Posts.Register(admin.Group("/posts"), uuidParam)

		admin.GET("/settings", h.Settings.List)
		admin.PUT("/settings/:key", h.Settings.Set)
		admin.POST("/resume", h.Settings.UploadResume)

		admin.GET("/media/images", h.Media.ListImages)
		admin.POST("/media/images", h.Media.UploadImage)
		admin.DELETE("/media/:id", uuidParam, h.Media.Delete)
	}

	return r
}
