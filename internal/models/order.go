package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

type Order struct {
	ID            string        `gorm:"primaryKey" json:"id"`
	Code          string        `gorm:"index" json:"code"`
	Status        OrderStatus   `gorm:"index" json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CustomerName  string        `json:"customer_name"`
	ExpiryDate    *time.Time    `json:"expiry_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// Package is a fulfillment bundle attached to an order. It rides along in
// snapshots; no alert rule consumes it today.
type Package struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"index" json:"order_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
