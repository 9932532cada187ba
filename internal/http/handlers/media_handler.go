package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// MediaAdmin загрузка и удаление изображений.
type MediaAdmin interface {
	UploadImage(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (*models.MediaFile, error)
	ListImages(ctx context.Context) ([]models.MediaFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MediaHandler управляет загрузкой и удалением изображений.
type MediaHandler struct {
	media MediaAdmin
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(media MediaAdmin) *MediaHandler {
	return &MediaHandler{media: media}
}

// UploadImage обрабатывает POST /api/admin/media/images.
func (h *MediaHandler) UploadImage(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}

	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	defer src.Close()

	media, err := h.media.UploadImage(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, media)
}

// ListImages обрабатывает GET /api/admin/media/images.
func (h *MediaHandler) ListImages(c *gin.Context) {
	items, err := h.media.ListImages(c.Request.Context())
	respondList(c, items, err)
}

// Delete обрабатывает DELETE /api/admin/media/:id.
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.media.Delete(c.Request.Context(), id); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
