package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"index" json:"code"`
	Name         string    `json:"name"`
	AccountBased bool      `json:"account_based"`
	Stock        int       `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Profiles []InventoryProfile `gorm:"foreignKey:ItemID" json:"profiles"`
}

// InventoryProfile is one account slot on an account-based item.
type InventoryProfile struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ItemID      string    `gorm:"index" json:"item_id"`
	Label       string    `json:"label"`
	NeedsUpdate bool      `json:"needs_update"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

func (p *InventoryProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
