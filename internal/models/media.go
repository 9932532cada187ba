package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaFile изображение или документ, загруженный через админку.
// FilePath задан относительно корня хранилища, URL вычисляется при выдаче.
type MediaFile struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       *uuid.UUID `db:"user_id" json:"uploaded_by,omitempty"`
	Bucket       string     `db:"bucket" json:"bucket"`
	FilePath     string     `db:"file_path" json:"file_path"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     string     `db:"file_type" json:"mime_type"`
	FileSize     int64      `db:"file_size" json:"size"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	URL          string     `db:"-" json:"url"`
}
