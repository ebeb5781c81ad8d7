package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/backend/internal/logger"
	"github.com/stockroomhq/stockroom/backend/internal/models"
)

// ReadStateKey is the settings row holding the acknowledged notification ids.
const ReadStateKey = "notifications.read_ids"

// ReadStateStore persists the set of acknowledged notification ids
// independently of notification lifecycle. Once an id enters the set, any
// notification carrying it is presented as read.
type ReadStateStore interface {
	Load() map[string]struct{}
	Save(ids map[string]struct{}) error
}

// SettingReadStateStore keeps the id set as one JSON array in the settings
// table.
type SettingReadStateStore struct {
	DB *gorm.DB
}

func NewSettingReadStateStore(db *gorm.DB) *SettingReadStateStore {
	return &SettingReadStateStore{DB: db}
}

// Load returns the persisted id set. A missing or unparseable row yields an
// empty set; corruption is never fatal.
func (s *SettingReadStateStore) Load() map[string]struct{} {
	ids := make(map[string]struct{})

	var row models.Setting
	if err := s.DB.Where("key = ?", ReadStateKey).First(&row).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Log().WithError(err).Warn("Failed to load read-state, treating as empty")
		}
		return ids
	}

	var list []string
	if err := json.Unmarshal([]byte(row.Value), &list); err != nil {
		logger.Log().WithError(err).Warn("Corrupt read-state payload, treating as empty")
		return ids
	}
	for _, id := range list {
		ids[id] = struct{}{}
	}
	return ids
}

// Save writes the full id set in one read-modify-write. Sorted output keeps
// the stored payload stable across saves.
func (s *SettingReadStateStore) Save(ids map[string]struct{}) error {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode read-state: %w", err)
	}

	setting := models.Setting{
		Key:      ReadStateKey,
		Value:    string(payload),
		Category: "notifications",
		Type:     "json",
	}
	if err := s.DB.Where(models.Setting{Key: ReadStateKey}).Assign(setting).FirstOrCreate(&setting).Error; err != nil {
		return fmt.Errorf("persist read-state: %w", err)
	}
	return nil
}
