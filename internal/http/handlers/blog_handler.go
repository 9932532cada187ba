package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// BlogAdmin CRUD постов плюс переключение публикации.
type BlogAdmin interface {
	ContentManager[models.BlogPost, dto.BlogPostInput]
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.BlogPost, error)
}

// BlogHandler админские маршруты блога.
type BlogHandler struct {
	*ContentHandler[models.BlogPost, dto.BlogPostInput]
	blog BlogAdmin
}

// NewBlogHandler создаёт хэндлер блога.
func NewBlogHandler(blog BlogAdmin) *BlogHandler {
	return &BlogHandler{
		ContentHandler: NewContentHandler[models.BlogPost, dto.BlogPostInput](blog),
		blog:           blog,
	}
}

// SetPublished обрабатывает PATCH /api/admin/posts/:id/published.
func (h *BlogHandler) SetPublished(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	post, err := h.blog.SetPublished(c.Request.Context(), id, *req.Published)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Register вешает CRUD и переключатель публикации.
func (h *BlogHandler) Register(group *gin.RouterGroup, uuidParam gin.HandlerFunc) {
	h.ContentHandler.Register(group, uuidParam)
	group.PATCH("/:id/published", uuidParam, h.SetPublished)
}
