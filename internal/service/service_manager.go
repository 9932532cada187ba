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

// ServiceRepository описывает хранилище услуг.
type ServiceRepository interface {
	List(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	Create(ctx context.Context, item *models.Service) error
	Update(ctx context.Context, item *models.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceManager управляет услугами из админки.
type ServiceManager struct {
	repo   ServiceRepository
	events contentEvents
}

// NewServiceManager создаёт менеджер услуг.
func NewServiceManager(repo ServiceRepository, c cache.Cache, notifier ContentNotifier) *ServiceManager {
	return &ServiceManager{repo: repo, events: contentEvents{cache: c, notifier: notifier}}
}

func (m *ServiceManager) List(ctx context.Context) ([]models.Service, error) {
	items, err := m.repo.List(ctx)
	if err != nil {
		return nil, storeError(models.KindServices, "list", err, nil, nil)
	}
	return items, nil
}

func (m *ServiceManager) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	item, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(models.KindServices, "get", err, repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
	}
	return item, nil
}

func (m *ServiceManager) Create(ctx context.Context, in dto.ServiceInput) (*models.Service, error) {
	item, err := serviceFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := m.repo.Create(ctx, item); err != nil {
		return nil, storeError(models.KindServices, "create", err, nil, nil)
	}
	m.events.changed(ctx, models.KindServices, ActionCreate, item.ID)
	return item, nil
}

func (m *ServiceManager) Update(ctx context.Context, id uuid.UUID, in dto.ServiceInput) (*models.Service, error) {
	item, err := serviceFromInput(in)
	if err != nil {
		return nil, err
	}
	item.ID = id
	if err := m.repo.Update(ctx, item); err != nil {
		return nil, storeError(models.KindServices, "update", err, repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
	}
	m.events.changed(ctx, models.KindServices, ActionUpdate, item.ID)
	return item, nil
}

func (m *ServiceManager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.repo.Delete(ctx, id); err != nil {
		return storeError(models.KindServices, "delete", err, repository.ErrServiceNotFound, apperror.ErrServiceNotFound)
	}
	m.events.changed(ctx, models.KindServices, ActionDelete, id)
	return nil
}

func serviceFromInput(in dto.ServiceInput) (*models.Service, error) {
	if err := validation.ValidateRequired([]string{"title", "description"}, map[string]string{
		"title":       in.Title,
		"description": in.Description,
	}); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	return &models.Service{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Icon:        strings.TrimSpace(in.Icon),
		Features:    pq.StringArray(textutil.SplitLines(in.Features)),
		SortOrder:   in.SortOrder,
	}, nil
}
