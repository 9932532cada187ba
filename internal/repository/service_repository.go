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

// ErrServiceNotFound возвращается, когда услуга не найдена.
var ErrServiceNotFound = errors.New("service not found")

// ServiceRepository отвечает за таблицу services.
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository создаёт экземпляр репозитория.
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// List возвращает услуги в порядке отображения.
func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	items, err := common.ListOrdered[models.Service](ctx, r.db, "services", "sort_order, created_at")
	if err != nil {
		return nil, fmt.Errorf("service repository: list %w", err)
	}
	return items, nil
}

// GetByID возвращает услугу по идентификатору.
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return common.GetByID[models.Service](ctx, r.db, "services", id, ErrServiceNotFound)
}

// Create сохраняет новую услугу.
func (r *ServiceRepository) Create(ctx context.Context, item *models.Service) error {
	query := `
		INSERT INTO services (title, description, icon, features, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		item.Title, item.Description, item.Icon, item.Features, item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return fmt.Errorf("service repository: create %w", err)
	}

	return nil
}

// Update полностью перезаписывает услугу.
func (r *ServiceRepository) Update(ctx context.Context, item *models.Service) error {
	query := `
		UPDATE services
		SET title = $1,
		    description = $2,
		    icon = $3,
		    features = $4,
		    sort_order = $5,
		    updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		item.Title, item.Description, item.Icon, item.Features, item.SortOrder, item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("service repository: update %w", err)
	}

	return nil
}

// Delete удаляет услугу.
func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return common.DeleteByID(ctx, r.db, "services", id, ErrServiceNotFound)
}
