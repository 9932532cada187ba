package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParamKey ключ gin.Context, под которым UUIDValidator кладёт разобранный параметр.
func ParamKey(paramName string) string {
	return "param:" + paramName
}

// UUIDValidator проверяет, что параметр с указанным именем является валидным UUID.
// Использование: admin.PUT("/services/:id", UUIDValidator("id"), handler.Update)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " обязателен",
			})
			return
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " должен быть валидным UUID",
			})
			return
		}

		c.Set(ParamKey(paramName), id)
		c.Next()
	}
}
