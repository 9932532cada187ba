// Package dto содержит формы и ответы API, общие для сервера и клиента.
package dto

// ServiceInput поля формы услуги. Features по одной на строку.
type ServiceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Features    string `json:"features"`
	SortOrder   int    `json:"sort_order"`
}

// WorkInput поля формы работы. Technologies через запятую.
type WorkInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Technologies string `json:"technologies"`
	DemoLink     string `json:"demo_link"`
	CodeLink     string `json:"code_link"`
	Featured     bool   `json:"featured"`
	SortOrder    int    `json:"sort_order"`
}

// ToolInput поля формы инструмента. Features по одной на строку.
type ToolInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	ColorGradient string `json:"color_gradient"`
	Features      string `json:"features"`
	Status        string `json:"status"`
	Link          string `json:"link"`
	SortOrder     int    `json:"sort_order"`
}

// BlogPostInput поля формы поста. Tags через запятую.
// Пустой Slug выводится из заголовка, ReadingTime <= 0 оценивается по тексту.
type BlogPostInput struct {
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	Excerpt          string `json:"excerpt"`
	Content          string `json:"content"`
	FeaturedImageURL string `json:"featured_image_url"`
	Published        bool   `json:"published"`
	Tags             string `json:"tags"`
	AuthorName       string `json:"author_name"`
	ReadingTime      int    `json:"reading_time"`
	SortOrder        int    `json:"sort_order"`
}
