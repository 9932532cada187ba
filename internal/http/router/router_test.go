package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/ws"
)

type stubManager[T any, In any] struct{}

func (stubManager[T, In]) List(context.Context) ([]T, error)                 { return []T{}, nil }
func (stubManager[T, In]) Get(context.Context, uuid.UUID) (*T, error)        { return new(T), nil }
func (stubManager[T, In]) Create(context.Context, In) (*T, error)            { return new(T), nil }
func (stubManager[T, In]) Update(context.Context, uuid.UUID, In) (*T, error) { return new(T), nil }
func (stubManager[T, In]) Delete(context.Context, uuid.UUID) error           { return nil }

type stubBlog struct {
	stubManager[models.BlogPost, dto.BlogPostInput]
}

func (stubBlog) SetPublished(context.Context, uuid.UUID, bool) (*models.BlogPost, error) {
	return &models.BlogPost{}, nil
}

type stubAuth struct {
	userID  uuid.UUID
	isAdmin bool
}

func (s stubAuth) Parse(token string) (uuid.UUID, string, error) {
	if token != "valid" {
		return uuid.Nil, "", assert.AnError
	}
	return s.userID, models.RoleUser, nil
}

func (s stubAuth) IsAdmin(context.Context, uuid.UUID) (bool, error) { return s.isAdmin, nil }

type stubRelay struct{}

func (stubRelay) Relay(context.Context, string) (string, error) { return "hello", nil }

func newTestEngine(auth stubAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:              "test",
		AllowedOrigins:   []string{"https://site.example"},
		MediaStoragePath: ".",
		MaxUploadSizeMB:  1,
	}

	h := Handlers{
		Chat:     handlers.NewChatHandler(stubRelay{}),
		Public:   handlers.NewPublicHandler(nil, nil),
		Auth:     handlers.NewAuthHandler(nil),
		Services: handlers.NewContentHandler[models.Service, dto.ServiceInput](stubManager[models.Service, dto.ServiceInput]{}),
		Works:    handlers.NewContentHandler[models.Work, dto.WorkInput](stubManager[models.Work, dto.WorkInput]{}),
		Tools:    handlers.NewContentHandler[models.Tool, dto.ToolInput](stubManager[models.Tool, dto.ToolInput]{}),
		Posts:    handlers.NewBlogHandler(stubBlog{}),
		Settings: handlers.NewSettingsHandler(nil),
		Media:    handlers.NewMediaHandler(nil),
		WS:       handlers.NewWSHandler(ws.NewHub(), auth, auth, cfg.AllowedOrigins),
		Health:   handlers.NewHealthHandler(nil, nil),
	}
	return SetupRouter(cfg, h, auth, auth)
}

func serve(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	r := newTestEngine(stubAuth{userID: uuid.New(), isAdmin: true})

	w := serve(r, http.MethodPost, "/api/admin/services", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminRejectsNonAdmin(t *testing.T) {
	r := newTestEngine(stubAuth{userID: uuid.New(), isAdmin: false})

	for _, path := range []string{"/api/admin/services", "/api/admin/works", "/api/admin/tools", "/api/admin/posts"} {
		w := serve(r, http.MethodPost, path, "valid")
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestRouter_AdminAllowsAdmin(t *testing.T) {
	r := newTestEngine(stubAuth{userID: uuid.New(), isAdmin: true})

	w := serve(r, http.MethodPost, "/api/admin/posts", "valid")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, http.MethodPatch, "/api/admin/posts/"+uuid.NewString()+"/published", "valid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_ChatIsPublicWithOpenCORS(t *testing.T) {
	r := newTestEngine(stubAuth{})

	req := httptest.NewRequest(http.MethodPost, ChatPath, strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Origin", "https://unknown.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_WebSocketRejectsNonAdmin(t *testing.T) {
	r := newTestEngine(stubAuth{userID: uuid.New(), isAdmin: false})

	w := serve(r, http.MethodGet, "/api/admin/ws?token=valid", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodGet, "/api/admin/ws", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
