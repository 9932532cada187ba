package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

var ErrMediaNotFound = errors.New("media not found")

// MediaRepository хранит записи о загруженных файлах (таблица media_files).
type MediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(ctx context.Context, media *models.MediaFile) error {
	query := `
		INSERT INTO media_files (user_id, bucket, file_path, original_name, file_type, file_size)
		VALUES (:user_id, :bucket, :file_path, :original_name, :file_type, :file_size)
		RETURNING id, created_at
	`

	rows, err := r.db.NamedQueryContext(ctx, query, media)
	if err != nil {
		return fmt.Errorf("media repository: create %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return fmt.Errorf("media repository: create вернул пустой результат")
	}
	if err := rows.Scan(&media.ID, &media.CreatedAt); err != nil {
		return fmt.Errorf("media repository: create scan %w", err)
	}
	return rows.Err()
}

// ListByBucket возвращает файлы бакета, новые первыми.
func (r *MediaRepository) ListByBucket(ctx context.Context, bucket string) ([]models.MediaFile, error) {
	var items []models.MediaFile
	query := `SELECT * FROM media_files WHERE bucket = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &items, query, bucket); err != nil {
		return nil, fmt.Errorf("media repository: list %w", err)
	}
	return items, nil
}

func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error) {
	return common.GetByID[models.MediaFile](ctx, r.db, "media_files", id, ErrMediaNotFound)
}

func (r *MediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return common.DeleteByID(ctx, r.db, "media_files", id, ErrMediaNotFound)
}
