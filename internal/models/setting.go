package models

import "time"

// AdminSetting пара ключ-значение из admin_settings.
type AdminSetting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
