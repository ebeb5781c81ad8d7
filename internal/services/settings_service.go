package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/backend/internal/logger"
	"github.com/stockroomhq/stockroom/backend/internal/models"
)

// SettingsKey is the settings row holding the notification configuration.
const SettingsKey = "notifications.settings"

// SettingsService holds the live notification settings for the session and
// persists updates to the settings table.
type SettingsService struct {
	mu      sync.RWMutex
	current models.NotificationSettings
	db      *gorm.DB
}

// NewSettingsService loads persisted settings, falling back to defaults when
// nothing is stored or the payload does not parse.
func NewSettingsService(db *gorm.DB) *SettingsService {
	svc := &SettingsService{
		current: models.DefaultNotificationSettings(),
		db:      db,
	}

	var row models.Setting
	if err := db.Where("key = ?", SettingsKey).First(&row).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Log().WithError(err).Warn("Failed to load notification settings, using defaults")
		}
		return svc
	}

	var stored models.NotificationSettings
	if err := json.Unmarshal([]byte(row.Value), &stored); err != nil {
		logger.Log().WithError(err).Warn("Corrupt notification settings, using defaults")
		return svc
	}
	if stored.ExpiryWarningDays < 0 {
		stored.ExpiryWarningDays = 0
	}
	svc.current = stored
	return svc
}

// Current returns the settings in effect for the next generation cycle.
func (s *SettingsService) Current() models.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates, persists and applies new settings.
func (s *SettingsService) Update(ns models.NotificationSettings) error {
	if ns.ExpiryWarningDays < 0 {
		return fmt.Errorf("expiry warning days must be >= 0, got %d", ns.ExpiryWarningDays)
	}

	payload, err := json.Marshal(ns)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	setting := models.Setting{
		Key:      SettingsKey,
		Value:    string(payload),
		Category: "notifications",
		Type:     "json",
	}
	if err := s.db.Where(models.Setting{Key: SettingsKey}).Assign(setting).FirstOrCreate(&setting).Error; err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}

	s.mu.Lock()
	s.current = ns
	s.mu.Unlock()
	return nil
}
