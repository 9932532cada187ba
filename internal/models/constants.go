package models

// Role константы ролей профиля
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ToolStatus константы статусов инструментов
const (
	ToolStatusLive       = "Live"
	ToolStatusBeta       = "Beta"
	ToolStatusComingSoon = "Coming Soon"
)

// ValidToolStatuses список валидных статусов инструментов
var ValidToolStatuses = map[string]struct{}{
	ToolStatusLive:       {},
	ToolStatusBeta:       {},
	ToolStatusComingSoon: {},
}

// Ключи таблицы admin_settings
const (
	SettingResumeFilename   = "resume_filename"
	SettingAssistantContext = "assistant_context"
)

// ContentKind перечисляет виды контента, которыми управляет админка.
type ContentKind string

const (
	KindServices ContentKind = "services"
	KindWorks    ContentKind = "works"
	KindTools    ContentKind = "tools"
	KindPosts    ContentKind = "posts"
)
