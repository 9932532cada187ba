package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Service описывает услугу в разделе «Services».
type Service struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Icon        string         `db:"icon" json:"icon"`
	Features    pq.StringArray `db:"features" json:"features"`
	SortOrder   int            `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// Work описывает проект из раздела «Works».
type Work struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`
	ImageURL     string         `db:"image_url" json:"image_url"`
	Technologies pq.StringArray `db:"technologies" json:"technologies"`
	DemoLink     string         `db:"demo_link" json:"demo_link"`
	CodeLink     string         `db:"code_link" json:"code_link"`
	Featured     bool           `db:"featured" json:"featured"`
	SortOrder    int            `db:"sort_order" json:"sort_order"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Tool описывает инструмент со страницы «Tools».
type Tool struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Description   string         `db:"description" json:"description"`
	Icon          string         `db:"icon" json:"icon"`
	ColorGradient string         `db:"color_gradient" json:"color_gradient"`
	Features      pq.StringArray `db:"features" json:"features"`
	Status        string         `db:"status" json:"status"`
	Link          string         `db:"link" json:"link"`
	SortOrder     int            `db:"sort_order" json:"sort_order"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// BlogPost описывает запись блога.
type BlogPost struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	Title            string         `db:"title" json:"title"`
	Slug             string         `db:"slug" json:"slug"`
	Excerpt          string         `db:"excerpt" json:"excerpt"`
	Content          string         `db:"content" json:"content"`
	FeaturedImageURL *string        `db:"featured_image_url" json:"featured_image_url,omitempty"`
	Published        bool           `db:"published" json:"published"`
	Tags             pq.StringArray `db:"tags" json:"tags"`
	AuthorName       string         `db:"author_name" json:"author_name"`
	ReadingTime      int            `db:"reading_time" json:"reading_time"`
	SortOrder        int            `db:"sort_order" json:"sort_order"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// BlogFilter задаёт фильтры публичного списка постов.
type BlogFilter struct {
	Query string
	Tag   string
}
