package models

import "time"

// Setting is a durable key/value row. Notification settings and the
// acknowledged-id set are stored here.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex" json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category"`
	Type      string    `json:"type"` // string, int, bool, json
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
