package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeExpiryWarning      NotificationType = "EXPIRY_WARNING"
	NotificationTypeNewOrder           NotificationType = "NEW_ORDER"
	NotificationTypePaymentReminder    NotificationType = "PAYMENT_REMINDER"
	NotificationTypeProcessingDelay    NotificationType = "PROCESSING_DELAY"
	NotificationTypeProfileNeedsUpdate NotificationType = "PROFILE_NEEDS_UPDATE"
	NotificationTypeNewWarranty        NotificationType = "NEW_WARRANTY"
)

// NotificationTypes lists every category in evaluator order. Grouping
// tie-breaks rely on this ordering.
var NotificationTypes = []NotificationType{
	NotificationTypeExpiryWarning,
	NotificationTypeNewOrder,
	NotificationTypePaymentReminder,
	NotificationTypeProcessingDelay,
	NotificationTypeProfileNeedsUpdate,
	NotificationTypeNewWarranty,
}

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

var keyPrefixes = map[NotificationType]string{
	NotificationTypeExpiryWarning:      "expiry",
	NotificationTypeNewOrder:           "new-order",
	NotificationTypePaymentReminder:    "payment",
	NotificationTypeProcessingDelay:    "processing-delay",
	NotificationTypeProfileNeedsUpdate: "profile-update",
	NotificationTypeNewWarranty:        "new-warranty",
}

// NotificationKey derives the deterministic dedup id for a category and its
// related entity. The same real-world condition always maps to the same id,
// which is what keeps regeneration idempotent. When no related entity exists
// a random synthetic key is minted instead.
func NotificationKey(t NotificationType, relatedID string) string {
	prefix, ok := keyPrefixes[t]
	if !ok {
		prefix = "notification"
	}
	if relatedID == "" {
		return prefix + "-" + uuid.NewString()
	}
	return prefix + "-" + relatedID
}

type Notification struct {
	ID         string               `gorm:"primaryKey" json:"id"`
	Type       NotificationType     `gorm:"index" json:"type"`
	Title      string               `json:"title"`
	Message    string               `json:"message"`
	Priority   NotificationPriority `json:"priority"`
	Read       bool                 `json:"is_read"`
	Archived   bool                 `json:"archived"`
	CreatedAt  time.Time            `json:"created_at"`
	RelatedID  string               `gorm:"index" json:"related_id,omitempty"`
	ActionURL  string               `json:"action_url,omitempty"`
	EmployeeID string               `gorm:"index" json:"employee_id,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = NotificationKey(n.Type, n.RelatedID)
	}
	return
}

// NotificationSettings is the per-session generation configuration.
type NotificationSettings struct {
	ExpiryWarningDays           int  `json:"expiry_warning_days"`
	EnableExpiryWarnings        bool `json:"enable_expiry_warnings"`
	EnableNewOrderNotifications bool `json:"enable_new_order_notifications"`
	EnablePaymentReminders      bool `json:"enable_payment_reminders"`
}

// DefaultNotificationSettings returns the settings used until the operator
// changes them.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		ExpiryWarningDays:           7,
		EnableExpiryWarnings:        true,
		EnableNewOrderNotifications: true,
		EnablePaymentReminders:      true,
	}
}
