package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// ErrSettingNotFound возвращается, когда ключ настройки отсутствует.
var ErrSettingNotFound = errors.New("setting not found")

// SettingRepository работает с таблицей admin_settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository создаёт экземпляр.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get возвращает значение настройки по ключу.
func (r *SettingRepository) Get(ctx context.Context, key string) (*models.AdminSetting, error) {
	var setting models.AdminSetting
	if err := r.db.GetContext(ctx, &setting, `SELECT key, value, updated_at FROM admin_settings WHERE key = $1`, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("setting repository: get %w", err)
	}
	return &setting, nil
}

// Upsert создаёт или перезаписывает настройку.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) (*models.AdminSetting, error) {
	query := `
		INSERT INTO admin_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = NOW()
		RETURNING key, value, updated_at
	`

	var setting models.AdminSetting
	if err := r.db.GetContext(ctx, &setting, query, key, value); err != nil {
		return nil, fmt.Errorf("setting repository: upsert %w", err)
	}
	return &setting, nil
}

// List возвращает все настройки.
func (r *SettingRepository) List(ctx context.Context) ([]models.AdminSetting, error) {
	settings := make([]models.AdminSetting, 0)
	if err := r.db.SelectContext(ctx, &settings, `SELECT key, value, updated_at FROM admin_settings ORDER BY key`); err != nil {
		return nil, fmt.Errorf("setting repository: list %w", err)
	}
	return settings, nil
}
