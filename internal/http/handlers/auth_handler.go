package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
)

// Authenticator операции Auth Gate.
type Authenticator interface {
	SignUp(ctx context.Context, in dto.Credentials) (*dto.AuthResult, error)
	SignIn(ctx context.Context, in dto.Credentials) (*dto.AuthResult, error)
	Session(ctx context.Context, userID uuid.UUID) (*dto.Session, error)
}

// AuthHandler предоставляет HTTP слой для регистрации и входа.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp обрабатывает POST /api/auth/sign-up.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.SignUp(c.Request.Context(), dto.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// SignIn обрабатывает POST /api/auth/sign-in.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.SignIn(c.Request.Context(), dto.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Session обрабатывает GET /api/auth/session.
func (h *AuthHandler) Session(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	session, err := h.auth.Session(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
