package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
)

// ContentManager CRUD одного раздела сайта. In форма админки, T сохранённая запись.
type ContentManager[T any, In any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id uuid.UUID, in In) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContentHandler админский CRUD для услуг, работ, инструментов и постов.
type ContentHandler[T any, In any] struct {
	manager ContentManager[T, In]
}

// NewContentHandler создаёт хэндлер для раздела.
func NewContentHandler[T any, In any](manager ContentManager[T, In]) *ContentHandler[T, In] {
	return &ContentHandler[T, In]{manager: manager}
}

// List обрабатывает GET /api/admin/<kind>. Кэш не используется.
func (h *ContentHandler[T, In]) List(c *gin.Context) {
	items, err := h.manager.List(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandler[T, In]) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.manager.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler[T, In]) Create(c *gin.Context) {
	var in In
	if err := common.BindAndValidate(c, &in); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.manager.Create(c.Request.Context(), in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler[T, In]) Update(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var in In
	if err := common.BindAndValidate(c, &in); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.manager.Update(c.Request.Context(), id, in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler[T, In]) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.manager.Delete(c.Request.Context(), id); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Register вешает маршруты раздела на группу.
func (h *ContentHandler[T, In]) Register(group *gin.RouterGroup, uuidParam gin.HandlerFunc) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", uuidParam, h.Get)
	group.PUT("/:id", uuidParam, h.Update)
	group.DELETE("/:id", uuidParam, h.Delete)
}

// RouteRegistrar раздел админки, который сам вешает свои маршруты.
type RouteRegistrar interface {
	Register(group *gin.RouterGroup, uuidParam gin.HandlerFunc)
}
