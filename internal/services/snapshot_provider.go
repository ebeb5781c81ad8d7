package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/backend/internal/models"
)

// SnapshotProvider supplies the current business records for one evaluation
// cycle. Implementations must treat the underlying data as read-only.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

// GormSnapshotProvider reads entity tables from the primary database.
type GormSnapshotProvider struct {
	DB *gorm.DB
}

func NewGormSnapshotProvider(db *gorm.DB) *GormSnapshotProvider {
	return &GormSnapshotProvider{DB: db}
}

func (p *GormSnapshotProvider) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	if err := p.DB.WithContext(ctx).Find(&snap.Orders).Error; err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if err := p.DB.WithContext(ctx).Find(&snap.Packages).Error; err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if err := p.DB.WithContext(ctx).Preload("Profiles").Find(&snap.Items).Error; err != nil {
		return nil, fmt.Errorf("load inventory items: %w", err)
	}
	if err := p.DB.WithContext(ctx).Find(&snap.Warranties).Error; err != nil {
		return nil, fmt.Errorf("load warranties: %w", err)
	}
	return snap, nil
}
