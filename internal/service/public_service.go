package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ignatzorin/portfolio-backend/internal/ai"
	"github.com/ignatzorin/portfolio-backend/internal/cache"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/textutil"
)

// PostRenderer превращает текст поста в безопасный HTML.
type PostRenderer interface {
	Render(source string) (string, error)
}

// WorksView витрина работ: избранные отдельно от остальных.
type WorksView struct {
	Featured []models.Work `json:"featured"`
	Others   []models.Work `json:"others"`
}

// PostView опубликованный пост с отрендеренным содержимым.
type PostView struct {
	models.BlogPost
	ContentHTML string `json:"content_html"`
}

// PublicContent отдаёт публичные разделы сайта через кэш.
type PublicContent struct {
	services ServiceRepository
	works    WorkRepository
	tools    ToolRepository
	blog     BlogRepository
	renderer PostRenderer
	cache    cache.Cache
	ttl      time.Duration
	owner    ai.Owner
}

// PublicDeps зависимости PublicContent.
type PublicDeps struct {
	Services ServiceRepository
	Works    WorkRepository
	Tools    ToolRepository
	Blog     BlogRepository
	Renderer PostRenderer
	Cache    cache.Cache
	TTL      time.Duration
	Owner    ai.Owner
}

// NewPublicContent создаёт сервис публичного контента.
func NewPublicContent(deps PublicDeps) *PublicContent {
	return &PublicContent{
		services: deps.Services,
		works:    deps.Works,
		tools:    deps.Tools,
		blog:     deps.Blog,
		renderer: deps.Renderer,
		cache:    deps.Cache,
		ttl:      deps.TTL,
		owner:    deps.Owner,
	}
}

// ListServices возвращает услуги в порядке sort_order.
func (p *PublicContent) ListServices(ctx context.Context) ([]models.Service, error) {
	items, err := cache.GetOrLoad(ctx, p.cache, "services:list", p.ttl, p.services.List)
	if err != nil {
		return nil, storeError(models.KindServices, "public list", err, nil, nil)
	}
	return items, nil
}

// ListTools возвращает инструменты в порядке sort_order.
func (p *PublicContent) ListTools(ctx context.Context) ([]models.Tool, error) {
	items, err := cache.GetOrLoad(ctx, p.cache, "tools:list", p.ttl, p.tools.List)
	if err != nil {
		return nil, storeError(models.KindTools, "public list", err, nil, nil)
	}
	return items, nil
}

// ListWorks делит работы на избранные и остальные, сохраняя порядок.
func (p *PublicContent) ListWorks(ctx context.Context) (*WorksView, error) {
	items, err := cache.GetOrLoad(ctx, p.cache, "works:list", p.ttl, p.works.List)
	if err != nil {
		return nil, storeError(models.KindWorks, "public list", err, nil, nil)
	}

	view := &WorksView{Featured: []models.Work{}, Others: []models.Work{}}
	for _, w := range items {
		if w.Featured {
			view.Featured = append(view.Featured, w)
		} else {
			view.Others = append(view.Others, w)
		}
	}
	return view, nil
}

// ListPosts возвращает опубликованные посты с фильтром по тексту и тегу.
func (p *PublicContent) ListPosts(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error) {
	filter.Query = strings.ToLower(strings.TrimSpace(filter.Query))
	filter.Tag = strings.TrimSpace(filter.Tag)

	key := fmt.Sprintf("blog:list:q=%s:tag=%s", filter.Query, filter.Tag)
	items, err := cache.GetOrLoad(ctx, p.cache, key, p.ttl, func(ctx context.Context) ([]models.BlogPost, error) {
		return p.blog.ListPublished(ctx, filter)
	})
	if err != nil {
		return nil, storeError(models.KindPosts, "public list", err, nil, nil)
	}
	return items, nil
}

// ListTags возвращает теги опубликованных постов.
func (p *PublicContent) ListTags(ctx context.Context) ([]string, error) {
	tags, err := cache.GetOrLoad(ctx, p.cache, "blog:tags", p.ttl, p.blog.ListTags)
	if err != nil {
		return nil, storeError(models.KindPosts, "tags", err, nil, nil)
	}
	return tags, nil
}

// GetPost возвращает опубликованный пост по slug. Черновики не видны.
func (p *PublicContent) GetPost(ctx context.Context, slug string) (*PostView, error) {
	slug = strings.TrimSpace(slug)
	if !textutil.IsValidSlug(slug) {
		return nil, apperror.ErrPostNotFound
	}

	view, err := cache.GetOrLoad(ctx, p.cache, "blog:post:"+slug, p.ttl, func(ctx context.Context) (*PostView, error) {
		post, err := p.blog.GetPublishedBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		html, err := p.renderer.Render(post.Content)
		if err != nil {
			return nil, fmt.Errorf("render post %s: %w", post.ID, err)
		}
		return &PostView{BlogPost: *post, ContentHTML: html}, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, apperror.ErrPostNotFound
		}
		return nil, storeError(models.KindPosts, "public get", err, nil, nil)
	}
	return view, nil
}

// Site возвращает блок владельца для главной и контактов.
func (p *PublicContent) Site() ai.Owner {
	return p.owner
}
