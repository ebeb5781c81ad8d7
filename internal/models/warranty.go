package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarrantyStatus string

const (
	WarrantyStatusPending WarrantyStatus = "PENDING"
	WarrantyStatusActive  WarrantyStatus = "ACTIVE"
	WarrantyStatusExpired WarrantyStatus = "EXPIRED"
)

type Warranty struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"index" json:"code"`
	OrderID   string         `gorm:"index" json:"order_id"`
	Status    WarrantyStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (w *Warranty) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}
