package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// slugConstraint имя ограничения уникальности slug в миграции.
const slugConstraint = "blog_posts_slug_key"

var (
	// ErrPostNotFound возвращается, когда пост не найден.
	ErrPostNotFound = errors.New("blog post not found")
	// ErrSlugTaken возвращается при гонке двух записей с одинаковым slug.
	ErrSlugTaken = errors.New("blog post slug already taken")
)

// BlogRepository отвечает за таблицу blog_posts.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository создаёт экземпляр репозитория.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// List возвращает все посты, включая черновики, новые первыми.
func (r *BlogRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	items, err := common.ListOrdered[models.BlogPost](ctx, r.db, "blog_posts", "created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("blog repository: list %w", err)
	}
	return items, nil
}

// ListPublished возвращает только опубликованные посты с учётом фильтра.
// Query ищет по заголовку и анонсу без учёта регистра, Tag требует точного совпадения тега.
func (r *BlogRepository) ListPublished(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error) {
	query := `
		SELECT *
		FROM blog_posts
		WHERE published = TRUE
		  AND ($1 = '' OR title ILIKE '%' || $1 || '%' ESCAPE '\' OR excerpt ILIKE '%' || $1 || '%' ESCAPE '\')
		  AND ($2 = '' OR $2 = ANY(tags))
		ORDER BY created_at DESC
	`

	items := make([]models.BlogPost, 0)
	if err := r.db.SelectContext(ctx, &items, query, escapeLike(strings.TrimSpace(filter.Query)), strings.TrimSpace(filter.Tag)); err != nil {
		return nil, fmt.Errorf("blog repository: list published %w", err)
	}

	return items, nil
}

// ListTags возвращает уникальные теги опубликованных постов.
func (r *BlogRepository) ListTags(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT tag
		FROM blog_posts, unnest(tags) AS tag
		WHERE published = TRUE
		ORDER BY tag
	`

	tags := make([]string, 0)
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("blog repository: list tags %w", err)
	}

	return tags, nil
}

// GetByID возвращает пост по идентификатору независимо от публикации.
func (r *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return common.GetByID[models.BlogPost](ctx, r.db, "blog_posts", id, ErrPostNotFound)
}

// GetPublishedBySlug возвращает опубликованный пост. Черновики не находятся.
func (r *BlogRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.GetContext(ctx, &post, `SELECT * FROM blog_posts WHERE slug = $1 AND published = TRUE`, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("blog repository: get by slug %w", err)
	}
	return &post, nil
}

// SlugExists проверяет, занят ли slug другим постом.
func (r *BlogRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`
	if err := r.db.GetContext(ctx, &exists, query, slug, excludeID); err != nil {
		return false, fmt.Errorf("blog repository: slug exists %w", err)
	}
	return exists, nil
}

// Create сохраняет новый пост.
func (r *BlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (title, slug, excerpt, content, featured_image_url, published, tags, author_name, reading_time, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.FeaturedImageURL,
		post.Published,
		post.Tags,
		post.AuthorName,
		post.ReadingTime,
		post.SortOrder,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		if common.IsUniqueViolation(err, slugConstraint) {
			return ErrSlugTaken
		}
		return fmt.Errorf("blog repository: create %w", err)
	}

	return nil
}

// Update полностью перезаписывает пост.
func (r *BlogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET title = $1,
		    slug = $2,
		    excerpt = $3,
		    content = $4,
		    featured_image_url = $5,
		    published = $6,
		    tags = $7,
		    author_name = $8,
		    reading_time = $9,
		    sort_order = $10,
		    updated_at = NOW()
		WHERE id = $11
		RETURNING created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.FeaturedImageURL,
		post.Published,
		post.Tags,
		post.AuthorName,
		post.ReadingTime,
		post.SortOrder,
		post.ID,
	).Scan(&post.CreatedAt, &post.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		if common.IsUniqueViolation(err, slugConstraint) {
			return ErrSlugTaken
		}
		return fmt.Errorf("blog repository: update %w", err)
	}

	return nil
}

// SetPublished меняет только флаг публикации и updated_at.
func (r *BlogRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.BlogPost, error) {
	var post models.BlogPost
	query := `UPDATE blog_posts SET published = $1, updated_at = NOW() WHERE id = $2 RETURNING *`
	if err := r.db.GetContext(ctx, &post, query, published, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("blog repository: set published %w", err)
	}
	return &post, nil
}

// Delete удаляет пост.
func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return common.DeleteByID(ctx, r.db, "blog_posts", id, ErrPostNotFound)
}

// escapeLike экранирует спецсимволы шаблона LIKE.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
