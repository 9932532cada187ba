package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/cache"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// Действия для события content.changed.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ContentNotifier сообщает открытым админкам, что список нужно перечитать.
type ContentNotifier interface {
	ContentChanged(kind, action, id string)
}

// contentEvents общая реакция на успешную запись: сброс кэша и событие.
type contentEvents struct {
	cache    cache.Cache
	notifier ContentNotifier
}

func (e contentEvents) changed(ctx context.Context, kind models.ContentKind, action string, id uuid.UUID) {
	if e.cache != nil {
		if err := e.cache.InvalidatePrefix(ctx, cachePrefix(kind)); err != nil {
			logger.L().WithFields(logrus.Fields{
				"kind":  kind,
				"error": err.Error(),
			}).Warn("content: не удалось сбросить кэш")
		}
	}
	if e.notifier != nil {
		e.notifier.ContentChanged(string(kind), action, id.String())
	}
}

// cachePrefix префикс ключей публичного кэша для вида контента.
func cachePrefix(kind models.ContentKind) string {
	if kind == models.KindPosts {
		return "blog:"
	}
	return string(kind) + ":"
}

// storeError переводит ошибку репозитория в AppError и логирует неожиданные сбои.
func storeError(kind models.ContentKind, op string, err error, notFound error, appNotFound *apperror.AppError) error {
	if notFound != nil && errors.Is(err, notFound) {
		return appNotFound
	}
	logger.L().WithFields(logrus.Fields{
		"kind":  kind,
		"op":    op,
		"error": err.Error(),
	}).Error("content: ошибка хранилища")
	return apperror.Internal(err)
}
