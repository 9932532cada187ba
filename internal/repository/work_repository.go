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

// ErrWorkNotFound возвращается, когда работа не найдена.
var ErrWorkNotFound = errors.New("work not found")

// WorkRepository отвечает за таблицу works.
type WorkRepository struct {
	db *sqlx.DB
}

// NewWorkRepository создаёт экземпляр репозитория.
func NewWorkRepository(db *sqlx.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

// List возвращает работы в порядке отображения.
func (r *WorkRepository) List(ctx context.Context) ([]models.Work, error) {
	items, err := common.ListOrdered[models.Work](ctx, r.db, "works", "sort_order, created_at")
	if err != nil {
		return nil, fmt.Errorf("work repository: list %w", err)
	}
	return items, nil
}

// GetByID возвращает работу по идентификатору.
func (r *WorkRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Work, error) {
	return common.GetByID[models.Work](ctx, r.db, "works", id, ErrWorkNotFound)
}

// Create сохраняет новую работу.
func (r *WorkRepository) Create(ctx context.Context, item *models.Work) error {
	query := `
		INSERT INTO works (title, description, image_url, technologies, demo_link, code_link, featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		item.Title,
		item.Description,
		item.ImageURL,
		item.Technologies,
		item.DemoLink,
		item.CodeLink,
		item.Featured,
		item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return fmt.Errorf("work repository: create %w", err)
	}

	return nil
}

// Update полностью перезаписывает работу.
func (r *WorkRepository) Update(ctx context.Context, item *models.Work) error {
	query := `
		UPDATE works
		SET title = $1,
		    description = $2,
		    image_url = $3,
		    technologies = $4,
		    demo_link = $5,
		    code_link = $6,
		    featured = $7,
		    sort_order = $8,
		    updated_at = NOW()
		WHERE id = $9
		RETURNING created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		item.Title,
		item.Description,
		item.ImageURL,
		item.Technologies,
		item.DemoLink,
		item.CodeLink,
		item.Featured,
		item.SortOrder,
		item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWorkNotFound
		}
		return fmt.Errorf("work repository: update %w", err)
	}

	return nil
}

// Delete удаляет работу.
func (r *WorkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return common.DeleteByID(ctx, r.db, "works", id, ErrWorkNotFound)
}
