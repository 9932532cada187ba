package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает учётную запись для входа в админку.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Profile хранит роль пользователя. ID совпадает с идентификатором User.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin сообщает, есть ли у профиля доступ к админке.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
