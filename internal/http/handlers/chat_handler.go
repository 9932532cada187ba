package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// chatFailureMessage общий текст ошибки чата. Подробности уходят в details.
const chatFailureMessage = "Failed to process your message. Please try again."

// ChatRelay отвечает на вопрос посетителя.
type ChatRelay interface {
	Relay(ctx context.Context, message string) (string, error)
}

// ChatHandler публичный endpoint чат-ассистента.
type ChatHandler struct {
	relay ChatRelay
}

// NewChatHandler создаёт хэндлер.
func NewChatHandler(relay ChatRelay) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// Chat обрабатывает POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: chatFailureMessage, Details: err.Error()})
		return
	}

	reply, err := h.relay.Relay(c.Request.Context(), req.Message)
	if err != nil {
		status := http.StatusInternalServerError
		details := err.Error()
		if appErr, ok := apperror.As(err); ok {
			if appErr.Code == apperror.ErrCodeValidation {
				status = http.StatusBadRequest
			}
			details = appErr.Message
			if appErr.Cause != nil {
				details = appErr.Cause.Error()
			}
		}
		c.JSON(status, common.ErrorResponse{Error: chatFailureMessage, Details: details})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}
