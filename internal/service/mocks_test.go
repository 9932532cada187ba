package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *mockServiceRepo) Create(ctx context.Context, item *models.Service) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockServiceRepo) Update(ctx context.Context, item *models.Service) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockWorkRepo struct {
	mock.Mock
}

func (m *mockWorkRepo) List(ctx context.Context) ([]models.Work, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Work), args.Error(1)
}

func (m *mockWorkRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Work, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Work), args.Error(1)
}

func (m *mockWorkRepo) Create(ctx context.Context, item *models.Work) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockWorkRepo) Update(ctx context.Context, item *models.Work) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockWorkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockToolRepo struct {
	mock.Mock
}

func (m *mockToolRepo) List(ctx context.Context) ([]models.Tool, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *mockToolRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tool), args.Error(1)
}

func (m *mockToolRepo) Create(ctx context.Context, item *models.Tool) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockToolRepo) Update(ctx context.Context, item *models.Tool) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockToolRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockBlogRepo struct {
	mock.Mock
}

func (m *mockBlogRepo) List(ctx context.Context) ([]models.BlogPost, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BlogPost), args.Error(1)
}

func (m *mockBlogRepo) ListPublished(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.BlogPost), args.Error(1)
}

func (m *mockBlogRepo) ListTags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockBlogRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *mockBlogRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *mockBlogRepo) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	if args.Error(0) == nil {
		post.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockBlogRepo) Update(ctx context.Context, post *models.BlogPost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockBlogRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.BlogPost, error) {
	args := m.Called(ctx, id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *mockBlogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// recordingNotifier запоминает события content.changed.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) ContentChanged(kind, action, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, kind+":"+action+":"+id)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}
