package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockroomhq/stockroom/backend/internal/models"
)

// RemoteMirror is the external persisted copy of notifications used for
// cross-session durability. Writes are best-effort and idempotent by
// (type, related_id); the engine never blocks on it.
type RemoteMirror interface {
	// ExistingKeys returns the (type, related_id) pairs already stored for
	// the employee, keyed by MirrorKey.
	ExistingKeys(ctx context.Context, employeeID string) (map[string]struct{}, error)
	// Insert stores rows, skipping ids that already exist.
	Insert(ctx context.Context, rows []models.Notification) error
	// MarkArchived flags a stored row as archived. Archiving is one-way,
	// there is no unarchive.
	MarkArchived(ctx context.Context, id string) error
	// Load returns all rows for the employee, newest first.
	Load(ctx context.Context, employeeID string) ([]models.Notification, error)
}

// MirrorKey joins a category and related entity id into the dedup pair used
// for remote existence checks.
func MirrorKey(t models.NotificationType, relatedID string) string {
	return string(t) + "|" + relatedID
}

// GormRemoteMirror stores mirror rows in the notifications table.
type GormRemoteMirror struct {
	DB *gorm.DB
}

func NewGormRemoteMirror(db *gorm.DB) *GormRemoteMirror {
	return &GormRemoteMirror{DB: db}
}

func (m *GormRemoteMirror) ExistingKeys(ctx context.Context, employeeID string) (map[string]struct{}, error) {
	var rows []models.Notification
	if err := m.DB.WithContext(ctx).
		Select("type", "related_id").
		Where("employee_id = ?", employeeID).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query mirror keys: %w", err)
	}

	keys := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		keys[MirrorKey(r.Type, r.RelatedID)] = struct{}{}
	}
	return keys, nil
}

func (m *GormRemoteMirror) Insert(ctx context.Context, rows []models.Notification) error {
	if len(rows) == 0 {
		return nil
	}
	if err := m.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("insert mirror rows: %w", err)
	}
	return nil
}

func (m *GormRemoteMirror) MarkArchived(ctx context.Context, id string) error {
	if err := m.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("archived", true).Error; err != nil {
		return fmt.Errorf("archive mirror row: %w", err)
	}
	return nil
}

func (m *GormRemoteMirror) Load(ctx context.Context, employeeID string) ([]models.Notification, error) {
	var rows []models.Notification
	if err := m.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load mirror rows: %w", err)
	}
	return rows, nil
}
