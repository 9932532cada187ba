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

// ErrToolNotFound возвращается, когда инструмент не найден.
var ErrToolNotFound = errors.New("tool not found")

// ToolRepository отвечает за таблицу tools.
type ToolRepository struct {
	db *sqlx.DB
}

// NewToolRepository создаёт экземпляр репозитория.
func NewToolRepository(db *sqlx.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

// List возвращает инструменты в порядке отображения.
func (r *ToolRepository) List(ctx context.Context) ([]models.Tool, error) {
	items, err := common.ListOrdered[models.Tool](ctx, r.db, "tools", "sort_order, created_at")
	if err != nil {
		return nil, fmt.Errorf("tool repository: list %w", err)
	}
	return items, nil
}

// GetByID возвращает инструмент по идентификатору.
func (r *ToolRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	return common.GetByID[models.Tool](ctx, r.db, "tools", id, ErrToolNotFound)
}

// Create сохраняет новый инструмент.
func (r *ToolRepository) Create(ctx context.Context, item *models.Tool) error {
	query := `
		INSERT INTO tools (title, description, icon, color_gradient, features, status, link, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		item.Title,
		item.Description,
		item.Icon,
		item.ColorGradient,
		item.Features,
		item.Status,
		item.Link,
		item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return fmt.Errorf("tool repository: create %w", err)
	}

	return nil
}

// Update полностью перезаписывает инструмент.
func (r *ToolRepository) Update(ctx context.Context, item *models.Tool) error {
	query := `
		UPDATE tools
		SET title = $1,
		    description = $2,
		    icon = $3,
		    color_gradient = $4,
		    features = $5,
		    status = $6,
		    link = $7,
		    sort_order = $8,
		    updated_at = NOW()
		WHERE id = $9
		RETURNING created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		item.Title,
		item.Description,
		item.Icon,
		item.ColorGradient,
		item.Features,
		item.Status,
		item.Link,
		item.SortOrder,
		item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrToolNotFound
		}
		return fmt.Errorf("tool repository: update %w", err)
	}

	return nil
}

// Delete удаляет инструмент.
func (r *ToolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return common.DeleteByID(ctx, r.db, "tools", id, ErrToolNotFound)
}
