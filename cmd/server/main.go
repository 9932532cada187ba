package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/ai"
	"github.com/ignatzorin/portfolio-backend/internal/cache"
	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/db"
	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/portfolio-backend/internal/http/router"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/markdown"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/service"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
	"github.com/ignatzorin/portfolio-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.IsProduction() {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}
	lg := logger.L()

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn); err != nil {
		lg.Fatalf("main: ошибка миграций: %v", err)
	}

	contentCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		lg.Fatalf("main: %v", err)
	}
	defer contentCache.Close()
	lg.WithField("backend", contentCache.Name()).Info("main: кэш публичного контента готов")

	document, fromFile, err := ai.LoadDocument(cfg.AssistantContextPath)
	if err != nil {
		lg.Fatalf("main: документ ассистента: %v", err)
	}
	if !fromFile {
		lg.WithField("path", cfg.AssistantContextPath).Warn("main: файл контекста не найден, используется встроенный")
	}
	if cfg.GeminiAPIKey == "" {
		lg.Warn("main: GEMINI_API_KEY не задан, чат будет отвечать ошибкой")
	}

	files, err := storage.NewFileStorage(cfg.MediaStoragePath, cfg.PublicBaseURL, cfg.MaxUploadSizeMB)
	if err != nil {
		lg.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	serviceRepo := repository.NewServiceRepository(dbConn)
	workRepo := repository.NewWorkRepository(dbConn)
	toolRepo := repository.NewToolRepository(dbConn)
	blogRepo := repository.NewBlogRepository(dbConn)
	settingRepo := repository.NewSettingRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := service.NewAuthService(userRepo, tokenManager)
	settingsService := service.NewSettingsService(settingRepo, files)
	mediaService := service.NewMediaService(mediaRepo, files)

	gemini := ai.NewGeminiClient(ai.GeminiConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	chatService := service.NewChatService(gemini, document, settingsService)

	publicContent := service.NewPublicContent(service.PublicDeps{
		Services: serviceRepo,
		Works:    workRepo,
		Tools:    toolRepo,
		Blog:     blogRepo,
		Renderer: markdown.NewRenderer(),
		Cache:    contentCache,
		TTL:      cfg.ContentCacheTTL,
		Owner:    document.Owner,
	})

	// HTTP хэндлеры.
	h := httpRouter.Handlers{
		Auth:   httpHandlers.NewAuthHandler(authService),
		Chat:   httpHandlers.NewChatHandler(chatService),
		Public: httpHandlers.NewPublicHandler(publicContent, settingsService),
		Services: httpHandlers.NewContentHandler[models.Service, dto.ServiceInput](
			service.NewServiceManager(serviceRepo, contentCache, hub)),
		Works: httpHandlers.NewContentHandler[models.Work, dto.WorkInput](
			service.NewWorkManager(workRepo, contentCache, hub)),
		Tools: httpHandlers.NewContentHandler[models.Tool, dto.ToolInput](
			service.NewToolManager(toolRepo, contentCache, hub)),
		Posts:    httpHandlers.NewBlogHandler(service.NewBlogManager(blogRepo, contentCache, hub)),
		Settings: httpHandlers.NewSettingsHandler(settingsService),
		Media:    httpHandlers.NewMediaHandler(mediaService),
		WS:       httpHandlers.NewWSHandler(hub, tokenManager, authService, cfg.AllowedOrigins),
		Health:   httpHandlers.NewHealthHandler(dbConn, contentCache),
	}

	engine := httpRouter.SetupRouter(cfg, h, tokenManager, authService)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	lg.WithFields(logrus.Fields{
		"port": cfg.HTTPPort,
		"env":  cfg.Env,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.L().WithError(err).Error("main: ошибка закрытия базы")
	}
}
