package service

import (
	"context"
	"errors"
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

const (
	// defaultAuthorName подставляется, если автор не указан.
	defaultAuthorName = "Admin"
	// maxSlugAttempts ограничивает перебор суффиксов -2, -3, ...
	maxSlugAttempts = 100
)

// BlogRepository описывает хранилище постов.
type BlogRepository interface {
	List(ctx context.Context) ([]models.BlogPost, error)
	ListPublished(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error)
	ListTags(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlogManager управляет постами блога.
type BlogManager struct {
	repo   BlogRepository
	events contentEvents
}

// NewBlogManager создаёт менеджер блога.
func NewBlogManager(repo BlogRepository, c cache.Cache, notifier ContentNotifier) *BlogManager {
	return &BlogManager{repo: repo, events: contentEvents{cache: c, notifier: notifier}}
}

// List возвращает все посты, включая черновики.
func (m *BlogManager) List(ctx context.Context) ([]models.BlogPost, error) {
	items, err := m.repo.List(ctx)
	if err != nil {
		return nil, storeError(models.KindPosts, "list", err, nil, nil)
	}
	return items, nil
}

func (m *BlogManager) Get(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	post, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(models.KindPosts, "get", err, repository.ErrPostNotFound, apperror.ErrPostNotFound)
	}
	return post, nil
}

func (m *BlogManager) Create(ctx context.Context, in dto.BlogPostInput) (*models.BlogPost, error) {
	post, err := postFromInput(in)
	if err != nil {
		return nil, err
	}
	if post.Slug, err = m.uniqueSlug(ctx, post.Slug, uuid.Nil); err != nil {
		return nil, err
	}

	if err := m.repo.Create(ctx, post); err != nil {
		return nil, m.writeError("create", err)
	}
	m.events.changed(ctx, models.KindPosts, ActionCreate, post.ID)
	return post, nil
}

func (m *BlogManager) Update(ctx context.Context, id uuid.UUID, in dto.BlogPostInput) (*models.BlogPost, error) {
	post, err := postFromInput(in)
	if err != nil {
		return nil, err
	}
	post.ID = id
	if post.Slug, err = m.uniqueSlug(ctx, post.Slug, id); err != nil {
		return nil, err
	}

	if err := m.repo.Update(ctx, post); err != nil {
		return nil, m.writeError("update", err)
	}
	m.events.changed(ctx, models.KindPosts, ActionUpdate, post.ID)
	return post, nil
}

// SetPublished меняет только флаг публикации.
func (m *BlogManager) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.BlogPost, error) {
	post, err := m.repo.SetPublished(ctx, id, published)
	if err != nil {
		return nil, storeError(models.KindPosts, "set_published", err, repository.ErrPostNotFound, apperror.ErrPostNotFound)
	}
	m.events.changed(ctx, models.KindPosts, ActionUpdate, id)
	return post, nil
}

func (m *BlogManager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.repo.Delete(ctx, id); err != nil {
		return storeError(models.KindPosts, "delete", err, repository.ErrPostNotFound, apperror.ErrPostNotFound)
	}
	m.events.changed(ctx, models.KindPosts, ActionDelete, id)
	return nil
}

// uniqueSlug подбирает свободный slug, добавляя суффикс -2, -3, ...
// Пост с excludeID не считается конфликтом сам с собой.
func (m *BlogManager) uniqueSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := textutil.WithSuffix(base, n)
		taken, err := m.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", storeError(models.KindPosts, "slug_exists", err, nil, nil)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", apperror.New(apperror.ErrCodeConflict, "не удалось подобрать свободный slug")
}

func (m *BlogManager) writeError(op string, err error) error {
	if errors.Is(err, repository.ErrSlugTaken) {
		return apperror.Wrap(err, apperror.ErrCodeConflict, "slug уже занят, повторите сохранение")
	}
	return storeError(models.KindPosts, op, err, repository.ErrPostNotFound, apperror.ErrPostNotFound)
}

func postFromInput(in dto.BlogPostInput) (*models.BlogPost, error) {
	if err := validation.ValidateRequired([]string{"title", "content"}, map[string]string{
		"title":   in.Title,
		"content": in.Content,
	}); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	slugSource := in.Slug
	if strings.TrimSpace(slugSource) == "" {
		slugSource = in.Title
	}
	slug := textutil.Slugify(slugSource)
	if slug == "" {
		return nil, apperror.Validation("не удалось построить slug: укажите его латиницей")
	}

	readingTime := in.ReadingTime
	if readingTime <= 0 {
		readingTime = textutil.EstimateReadingTime(in.Content)
	}

	author := strings.TrimSpace(in.AuthorName)
	if author == "" {
		author = defaultAuthorName
	}

	var image *string
	if v := strings.TrimSpace(in.FeaturedImageURL); v != "" {
		image = &v
	}

	return &models.BlogPost{
		Title:            strings.TrimSpace(in.Title),
		Slug:             slug,
		Excerpt:          strings.TrimSpace(in.Excerpt),
		Content:          in.Content,
		FeaturedImageURL: image,
		Published:        in.Published,
		Tags:             pq.StringArray(textutil.SplitComma(in.Tags)),
		AuthorName:       author,
		ReadingTime:      readingTime,
		SortOrder:        in.SortOrder,
	}, nil
}
