package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// SettingsAdmin настройки админки и загрузка резюме.
type SettingsAdmin interface {
	List(ctx context.Context) ([]models.AdminSetting, error)
	Set(ctx context.Context, key, value string) (*models.AdminSetting, error)
	UploadResume(ctx context.Context, originalName string, r io.Reader) (*service.ResumeInfo, error)
}

// SettingsHandler админские настройки.
type SettingsHandler struct {
	settings SettingsAdmin
}

// NewSettingsHandler создаёт хэндлер.
func NewSettingsHandler(settings SettingsAdmin) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// List обрабатывает GET /api/admin/settings.
func (h *SettingsHandler) List(c *gin.Context) {
	items, err := h.settings.List(c.Request.Context())
	respondList(c, items, err)
}

// Set обрабатывает PUT /api/admin/settings/:key.
func (h *SettingsHandler) Set(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	setting, err := h.settings.Set(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UploadResume обрабатывает POST /api/admin/resume (multipart, поле file).
func (h *SettingsHandler) UploadResume(c *gin.Context) {
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

	info, err := h.settings.UploadResume(c.Request.Context(), file.Filename, src)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
