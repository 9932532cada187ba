package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware обрабатывает CORS заголовки и preflight запросы.
// Разрешает только origins из списка allowedOrigins.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ChatCORS открытый CORS для чат-релея: виджет может стоять на любом origin.
// Preflight отвечает 200 без тела.
func ChatCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		h.Del("Access-Control-Allow-Credentials")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// SplitCORS применяет ChatCORS к openPaths и CORSMiddleware ко всем остальным путям.
// Нужен на уровне движка: preflight на неизвестный маршрут проходит только глобальные middleware.
func SplitCORS(allowedOrigins []string, openPaths ...string) gin.HandlerFunc {
	strict := CORSMiddleware(allowedOrigins)
	open := ChatCORS()
	paths := make(map[string]struct{}, len(openPaths))
	for _, p := range openPaths {
		paths[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := paths[c.Request.URL.Path]; ok {
			open(c)
			return
		}
		strict(c)
	}
}
