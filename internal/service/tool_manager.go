package service

import (
	"context"
	"fmt"
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

// ToolRepository описывает хранилище инструментов.
type ToolRepository interface {
	List(ctx context.Context) ([]models.Tool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error)
	Create(ctx context.Context, item *models.Tool) error
	Update(ctx context.Context, item *models.Tool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ToolManager управляет инструментами.
type ToolManager struct {
	repo   ToolRepository
	events contentEvents
}

// NewToolManager создаёт менеджер инструментов.
func NewToolManager(repo ToolRepository, c cache.Cache, notifier ContentNotifier) *ToolManager {
	return &ToolManager{repo: repo, events: contentEvents{cache: c, notifier: notifier}}
}

func (m *ToolManager) List(ctx context.Context) ([]models.Tool, error) {
	items, err := m.repo.List(ctx)
	if err != nil {
		return nil, storeError(models.KindTools, "list", err, nil, nil)
	}
	return items, nil
}

func (m *ToolManager) Get(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	item, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(models.KindTools, "get", err, repository.ErrToolNotFound, apperror.ErrToolNotFound)
	}
	return item, nil
}

func (m *ToolManager) Create(ctx context.Context, in dto.ToolInput) (*models.Tool, error) {
	item, err := toolFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := m.repo.Create(ctx, item); err != nil {
		return nil, storeError(models.KindTools, "create", err, nil, nil)
	}
	m.events.changed(ctx, models.KindTools, ActionCreate, item.ID)
	return item, nil
}

func (m *ToolManager) Update(ctx context.Context, id uuid.UUID, in dto.ToolInput) (*models.Tool, error) {
	item, err := toolFromInput(in)
	if err != nil {
		return nil, err
	}
	item.ID = id
	if err := m.repo.Update(ctx, item); err != nil {
		return nil, storeError(models.KindTools, "update", err, repository.ErrToolNotFound, apperror.ErrToolNotFound)
	}
	m.events.changed(ctx, models.KindTools, ActionUpdate, item.ID)
	return item, nil
}

func (m *ToolManager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.repo.Delete(ctx, id); err != nil {
		return storeError(models.KindTools, "delete", err, repository.ErrToolNotFound, apperror.ErrToolNotFound)
	}
	m.events.changed(ctx, models.KindTools, ActionDelete, id)
	return nil
}

func toolFromInput(in dto.ToolInput) (*models.Tool, error) {
	if err := validation.ValidateRequired([]string{"title", "description"}, map[string]string{
		"title":       in.Title,
		"description": in.Description,
	}); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.ToolStatusComingSoon
	}
	if _, ok := models.ValidToolStatuses[status]; !ok {
		return nil, apperror.Validation(fmt.Sprintf("status должен быть одним из: %s, %s, %s",
			models.ToolStatusLive, models.ToolStatusBeta, models.ToolStatusComingSoon))
	}

	return &models.Tool{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Icon:          strings.TrimSpace(in.Icon),
		ColorGradient: strings.TrimSpace(in.ColorGradient),
		Features:      pq.StringArray(textutil.SplitLines(in.Features)),
		Status:        status,
		Link:          strings.TrimSpace(in.Link),
		SortOrder:     in.SortOrder,
	}, nil
}
