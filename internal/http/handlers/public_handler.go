package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/ai"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// PublicReader данные публичного сайта.
type PublicReader interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	ListTools(ctx context.Context) ([]models.Tool, error)
	ListWorks(ctx context.Context) (*service.WorksView, error)
	ListPosts(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error)
	ListTags(ctx context.Context) ([]string, error)
	GetPost(ctx context.Context, slug string) (*service.PostView, error)
	Site() ai.Owner
}

// ResumeReader отдаёт ссылку на актуальное резюме.
type ResumeReader interface {
	Resume(ctx context.Context) (*service.ResumeInfo, error)
}

// PublicHandler маршруты публичного сайта. Только чтение.
type PublicHandler struct {
	content PublicReader
	resume  ResumeReader
}

// NewPublicHandler создаёт хэндлер.
func NewPublicHandler(content PublicReader, resume ResumeReader) *PublicHandler {
	return &PublicHandler{content: content, resume: resume}
}

// Services обрабатывает GET /api/services.
func (h *PublicHandler) Services(c *gin.Context) {
	items, err := h.content.ListServices(c.Request.Context())
	respondList(c, items, err)
}

// Tools обрабатывает GET /api/tools.
func (h *PublicHandler) Tools(c *gin.Context) {
	items, err := h.content.ListTools(c.Request.Context())
	respondList(c, items, err)
}

// Works обрабатывает GET /api/works.
func (h *PublicHandler) Works(c *gin.Context) {
	view, err := h.content.ListWorks(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Posts обрабатывает GET /api/blog?q=&tag=.
func (h *PublicHandler) Posts(c *gin.Context) {
	items, err := h.content.ListPosts(c.Request.Context(), models.BlogFilter{
		Query: c.Query("q"),
		Tag:   c.Query("tag"),
	})
	respondList(c, items, err)
}

// Tags обрабатывает GET /api/blog/tags.
func (h *PublicHandler) Tags(c *gin.Context) {
	tags, err := h.content.ListTags(c.Request.Context())
	respondList(c, tags, err)
}

// Post обрабатывает GET /api/blog/:slug.
func (h *PublicHandler) Post(c *gin.Context) {
	post, err := h.content.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Site обрабатывает GET /api/site.
func (h *PublicHandler) Site(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Site())
}

// Resume обрабатывает GET /api/resume.
func (h *PublicHandler) Resume(c *gin.Context) {
	info, err := h.resume.Resume(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// respondList отдаёт пустой массив вместо null.
func respondList[T any](c *gin.Context, items []T, err error) {
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}
