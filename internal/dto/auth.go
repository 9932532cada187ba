package dto

import "github.com/ignatzorin/portfolio-backend/internal/models"

// Credentials данные для входа и регистрации.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult возвращает итог регистрации или входа. ExpiresIn в секундах.
type AuthResult struct {
	User      *models.User    `json:"user"`
	Profile   *models.Profile `json:"profile"`
	Token     string          `json:"token"`
	ExpiresIn int64           `json:"expires_in"`
}

// Session текущая сессия. Клиент показывает вход в админку только при IsAdmin.
type Session struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
	IsAdmin bool            `json:"is_admin"`
}
