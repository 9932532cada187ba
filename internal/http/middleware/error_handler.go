package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, централизованно.
// Внутренние ошибки маскируются, AppError отдаётся со своим статусом и сообщением.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		statusCode := http.StatusInternalServerError
		message := "внутренняя ошибка сервера"

		if appErr, ok := apperror.As(err.Err); ok {
			statusCode = appErr.HTTPStatus
			if statusCode != http.StatusInternalServerError {
				message = appErr.Message
			}
		}

		fields := logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": statusCode,
		}
		if statusCode >= http.StatusInternalServerError {
			logger.L().WithFields(fields).Error("Request error")
		} else {
			logger.L().WithFields(fields).Debug("Request rejected")
		}

		c.JSON(statusCode, gin.H{"error": message})
	}
}
