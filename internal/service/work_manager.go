package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignatzorin/portfolio-backend/internal/cache"
	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/textutil"
	"github.com/ignatzorin/portfolio-backend/internal/validation"
)

// WorkRepository описывает хранилище работ.
type WorkRepository interface {
	List(ctx context.Context) ([]models.Work, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Work, error)
	Create(ctx context.Context, item *models.Work) error
	Update(ctx context.Context, item *models.Work) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkManager управляет работами портфолио.
type WorkManager struct {
	repo   WorkRepository
	events contentEvents
}

// NewWorkManager создаёт менеджер работ.
func NewWorkManager(repo WorkRepository, c cache.Cache, notifier ContentNotifier) *WorkManager {
	return &WorkManager{repo: repo, events: contentEvents{cache: c, notifier: notifier}}
}

func (m *WorkManager) List(ctx context.Context) ([]models.Work, error) {
	items, err := m.repo.List(ctx)
	if err != nil {
		return nil, storeError(models.KindWorks, "list", err, nil, nil)
	}
	return items, nil
}

func (m *WorkManager) Get(ctx context.Context, id uuid.UUID) (*models.Work, error) {
	item, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(models.KindWorks, "get", err, repository.ErrWorkNotFound, apperror.ErrWorkNotFound)
	}
	return item, nil
}

func (m *WorkManager) Create(ctx context.Context, in dto.WorkInput) (*models.Work, error) {
	item, err := workFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := m.repo.Create(ctx, item); err != nil {
		return nil, storeError(models.KindWorks, "create", err, nil, nil)
	}
	m.events.changed(ctx, models.KindWorks, ActionCreate, item.ID)
	return item, nil
}

func (m *WorkManager) Update(ctx context.Context, id uuid.UUID, in dto.WorkInput) (*models.Work, error) {
	item, err := workFromInput(in)
	if err != nil {
		return nil, err
	}
	item.ID = id
	if err := m.repo.Update(ctx, item); err != nil {
		return nil, storeError(models.KindWorks, "update", err, repository.ErrWorkNotFound, apperror.ErrWorkNotFound)
	}
	m.events.changed(ctx, models.KindWorks, ActionUpdate, item.ID)
	return item, nil
}

func (m *WorkManager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.repo.Delete(ctx, id); err != nil {
		return storeError(models.KindWorks, "delete", err, repository.ErrWorkNotFound, apperror.ErrWorkNotFound)
	}
	m.events.changed(ctx, models.KindWorks, ActionDelete, id)
	return nil
}

func workFromInput(in dto.WorkInput) (*models.Work, error) {
	if err := validation.ValidateRequired([]string{"title", "description"}, map[string]string{
		"title":       in.Title,
		"description": in.Description,
	}); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	return &models.Work{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Technologies: pq.StringArray(textutil.SplitComma(in.Technologies)),
		DemoLink:     strings.TrimSpace(in.DemoLink),
		CodeLink:     strings.TrimSpace(in.CodeLink),
		Featured:     in.Featured,
		SortOrder:    in.SortOrder,
	}, nil
}
