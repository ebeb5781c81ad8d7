package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/backend/internal/api/handlers"
	"github.com/stockroomhq/stockroom/backend/internal/models"
	"github.com/stockroomhq/stockroom/backend/internal/services"
)

func newSettingsRouter(t *testing.T) (*services.SettingsService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	db := setupNotificationTestDB(t)
	settings := services.NewSettingsService(db)
	handler := handlers.NewSettingsHandler(settings)

	router := gin.New()
	router.GET("/notifications/settings", handler.GetSettings)
	router.PUT("/notifications/settings", handler.UpdateSettings)
	return settings, router
}

func TestSettingsHandler_Get(t *testing.T) {
	_, router := newSettingsRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/settings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.NotificationSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.DefaultNotificationSettings(), got)
}

func TestSettingsHandler_PartialUpdate(t *testing.T) {
	settings, router := newSettingsRouter(t)

	body := `{"expiry_warning_days": 14, "enable_payment_reminders": false}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/notifications/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	current := settings.Current()
	assert.Equal(t, 14, current.ExpiryWarningDays)
	assert.False(t, current.EnablePaymentReminders)
	// Untouched toggles keep their value.
	assert.True(t, current.EnableExpiryWarnings)
}

func TestSettingsHandler_RejectsNegativeDays(t *testing.T) {
	_, router := newSettingsRouter(t)

	body := `{"expiry_warning_days": -2}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/notifications/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsHandler_RejectsBadJSON(t *testing.T) {
	_, router := newSettingsRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/notifications/settings", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
