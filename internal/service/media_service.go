package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// MediaRepository описывает хранилище записей о файлах.
type MediaRepository interface {
	Create(ctx context.Context, media *models.MediaFile) error
	ListByBucket(ctx context.Context, bucket string) ([]models.MediaFile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MediaService загружает изображения для работ и обложек постов.
type MediaService struct {
	repo  MediaRepository
	files FileStore
}

// NewMediaService создаёт сервис медиа.
func NewMediaService(repo MediaRepository, files FileStore) *MediaService {
	return &MediaService{repo: repo, files: files}
}

// UploadImage проверяет тип по магическим байтам и сохраняет изображение.
func (s *MediaService) UploadImage(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (*models.MediaFile, error) {
	kind, body, err := storage.Detect(r, originalName, storage.ImageKinds)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	relativePath, size, err := s.files.Save(ctx, storage.BucketImages, kind.Ext, body)
	if err != nil {
		return nil, uploadError(err)
	}

	media := &models.MediaFile{
		UserID:       &userID,
		Bucket:       storage.BucketImages,
		FilePath:     relativePath,
		OriginalName: filepath.Base(originalName),
		FileType:     kind.MIME,
		FileSize:     size,
	}
	if err := s.repo.Create(ctx, media); err != nil {
		_ = s.files.Delete(ctx, relativePath)
		return nil, apperror.Internal(err)
	}

	media.URL = s.files.PublicURL(relativePath)
	return media, nil
}

// ListImages возвращает загруженные изображения с публичными ссылками.
func (s *MediaService) ListImages(ctx context.Context) ([]models.MediaFile, error) {
	items, err := s.repo.ListByBucket(ctx, storage.BucketImages)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range items {
		items[i].URL = s.files.PublicURL(items[i].FilePath)
	}
	return items, nil
}

// Delete удаляет запись и файл.
func (s *MediaService) Delete(ctx context.Context, id uuid.UUID) error {
	media, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return apperror.ErrMediaNotFound
		}
		return apperror.Internal(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return apperror.ErrMediaNotFound
		}
		return apperror.Internal(err)
	}

	if err := s.files.Delete(ctx, media.FilePath); err != nil {
		logger.L().WithFields(logrus.Fields{
			"media_id": id,
			"error":    err.Error(),
		}).Warn("media: запись удалена, файл остался")
	}
	return nil
}
