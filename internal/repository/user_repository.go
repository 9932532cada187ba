package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

var (
	// ErrUserNotFound возвращается, когда запись пользователя не найдена.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound возвращается, когда у пользователя нет профиля.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEmailTaken возвращается при повторной регистрации email.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository отвечает за работу с таблицами users и profiles.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithProfile создаёт пользователя и его профиль в одной транзакции.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		userQuery := `
			INSERT INTO users (email, password_hash)
			VALUES ($1, $2)
			RETURNING id, created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, userQuery, user.Email, user.PasswordHash).
			Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			if common.IsUniqueViolation(err, "") {
				return ErrEmailTaken
			}
			return fmt.Errorf("user repository: create %w", err)
		}

		profile.ID = user.ID
		profile.Email = user.Email
		profileQuery := `
			INSERT INTO profiles (id, email, role)
			VALUES ($1, $2, $3)
			RETURNING created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, profileQuery, profile.ID, profile.Email, profile.Role).
			Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
			return fmt.Errorf("user repository: create profile %w", err)
		}

		return nil
	})
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "email", email, ErrUserNotFound)
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByID[models.User](ctx, r.db, "users", id, ErrUserNotFound)
}

// UpdatePassword меняет хэш пароля.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("user repository: update password %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpsertProfile создаёт или обновляет профиль пользователя.
func (r *UserRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, role, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    role = EXCLUDED.role,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	if err := r.db.QueryRowxContext(ctx, query, profile.ID, profile.Email, profile.Role).
		Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return fmt.Errorf("user repository: upsert profile %w", err)
	}

	return nil
}

// GetProfile возвращает профиль пользователя.
func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	query := `SELECT id, email, role, created_at, updated_at FROM profiles WHERE id = $1`
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("user repository: get profile %w", err)
	}
	return &profile, nil
}
