package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/backend/internal/api/handlers"
	"github.com/stockroomhq/stockroom/backend/internal/models"
	"github.com/stockroomhq/stockroom/backend/internal/services"
)

func setupNotificationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Order{},
		&models.Package{},
		&models.InventoryItem{},
		&models.InventoryProfile{},
		&models.Warranty{},
		&models.Notification{},
		&models.Setting{},
	))
	return db
}

func seedExpiringOrder(t *testing.T, db *gorm.DB) models.Order {
	expiry := time.Now().AddDate(0, 0, 2)
	order := models.Order{
		ID:            "O1",
		Code:          "ORD-1001",
		Status:        models.OrderStatusCompleted,
		PaymentStatus: models.PaymentStatusPaid,
		ExpiryDate:    &expiry,
		CreatedAt:     time.Now().AddDate(0, -1, 0),
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func newTestStack(t *testing.T, db *gorm.DB) (*handlers.NotificationHandler, *services.NotificationService, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	settings := services.NewSettingsService(db)
	svc := services.NewNotificationService(
		services.NewGormSnapshotProvider(db),
		settings,
		services.NewSettingReadStateStore(db),
		services.NewGormRemoteMirror(db),
		nil,
		"emp-1",
	)
	navigation := services.NewNavigationService(services.LogSink{})
	scheduler := services.NewScheduler(svc, time.Minute)

	handler := handlers.NewNotificationHandler(svc, navigation, scheduler)
	router := gin.New()
	router.GET("/notifications", handler.List)
	router.POST("/notifications/:id/read", handler.MarkAsRead)
	router.POST("/notifications/read-all", handler.MarkAllAsRead)
	router.POST("/notifications/:id/archive", handler.Archive)
	router.POST("/notifications/:id/navigate", handler.Navigate)
	router.POST("/notifications/generate", handler.Generate)
	return handler, svc, router
}

type listResponse struct {
	Groups []services.NotificationGroup `json:"groups"`
	Unread int                          `json:"unread"`
}

func TestNotificationHandler_List(t *testing.T) {
	db := setupNotificationTestDB(t)
	seedExpiringOrder(t, db)
	_, svc, router := newTestStack(t, db)
	require.NoError(t, svc.Generate(context.Background(), time.Now()))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, models.NotificationTypeExpiryWarning, resp.Groups[0].Type)
	assert.Equal(t, 1, resp.Unread)
}

func TestNotificationHandler_ListRejectsBadTab(t *testing.T) {
	db := setupNotificationTestDB(t)
	_, _, router := newTestStack(t, db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?tab=trash", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	db := setupNotificationTestDB(t)
	seedExpiringOrder(t, db)
	_, svc, router := newTestStack(t, db)
	require.NoError(t, svc.Generate(context.Background(), time.Now()))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/expiry-O1/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	n, ok := svc.Get("expiry-O1")
	require.True(t, ok)
	assert.True(t, n.Read)
}

func TestNotificationHandler_MarkAsReadUnknown(t *testing.T) {
	db := setupNotificationTestDB(t)
	_, _, router := newTestStack(t, db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/nope/read", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationHandler_MarkAllAsRead(t *testing.T) {
	db := setupNotificationTestDB(t)
	seedExpiringOrder(t, db)
	_, svc, router := newTestStack(t, db)
	require.NoError(t, svc.Generate(context.Background(), time.Now()))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/read-all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.UnreadCount())
}

func TestNotificationHandler_Archive(t *testing.T) {
	db := setupNotificationTestDB(t)
	seedExpiringOrder(t, db)
	_, svc, router := newTestStack(t, db)
	require.NoError(t, svc.Generate(context.Background(), time.Now()))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/expiry-O1/archive", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	archived := svc.View(services.ViewOptions{Tab: services.TabArchived})
	require.Len(t, archived, 1)
	assert.Equal(t, 1, archived[0].Total)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/notifications/missing/archive", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationHandler_Navigate(t *testing.T) {
	db := setupNotificationTestDB(t)
	seedExpiringOrder(t, db)
	_, svc, router := newTestStack(t, db)
	require.NoError(t, svc.Generate(context.Background(), time.Now()))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/expiry-O1/navigate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var dest services.Destination
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dest))
	assert.Equal(t, services.ViewOrders, dest.View)
	assert.Equal(t, "O1", dest.RecordID)
}

func TestNotificationHandler_Generate(t *testing.T) {
	db := setupNotificationTestDB(t)
	seedExpiringOrder(t, db)
	_, svc, router := newTestStack(t, db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/generate", bytes.NewReader(nil))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)

	assert.Eventually(t, func() bool {
		_, ok := svc.Get("expiry-O1")
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}
