package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockroomhq/stockroom/backend/internal/services"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings returns the notification settings in effect.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Current())
}

type UpdateSettingsRequest struct {
	ExpiryWarningDays           *int  `json:"expiry_warning_days"`
	EnableExpiryWarnings        *bool `json:"enable_expiry_warnings"`
	EnableNewOrderNotifications *bool `json:"enable_new_order_notifications"`
	EnablePaymentReminders      *bool `json:"enable_payment_reminders"`
}

// UpdateSettings applies a partial settings update.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next := h.settings.Current()
	if req.ExpiryWarningDays != nil {
		next.ExpiryWarningDays = *req.ExpiryWarningDays
	}
	if req.EnableExpiryWarnings != nil {
		next.EnableExpiryWarnings = *req.EnableExpiryWarnings
	}
	if req.EnableNewOrderNotifications != nil {
		next.EnableNewOrderNotifications = *req.EnableNewOrderNotifications
	}
	if req.EnablePaymentReminders != nil {
		next.EnablePaymentReminders = *req.EnablePaymentReminders
	}

	if err := h.settings.Update(next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, next)
}
