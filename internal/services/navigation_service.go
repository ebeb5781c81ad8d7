package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockroomhq/stockroom/backend/internal/logger"
	"github.com/stockroomhq/stockroom/backend/internal/models"
)

const (
	ViewOrders     = "orders"
	ViewWarehouse  = "warehouse"
	ViewWarranties = "warranties"
	ViewDashboard  = "dashboard"
)

// Destination is where a notification deep-links to.
type Destination struct {
	View     string `json:"view"`
	RecordID string `json:"record_id,omitempty"`
}

// NavigationSink receives the routing side effects of a dispatch. SwitchTab
// must not return until the destination tab reports active, so the focus
// signal that follows cannot race the tab change.
type NavigationSink interface {
	UpdateQuery(view string, params map[string]string)
	SwitchTab(ctx context.Context, view string) error
	FocusRecord(view, recordID string)
}

// NavigationService turns notifications into deep links and emits the
// routing signals in order: query update, tab switch, then record focus.
type NavigationService struct {
	sink NavigationSink
}

func NewNavigationService(sink NavigationSink) *NavigationService {
	return &NavigationService{sink: sink}
}

// Resolve maps a notification to its destination view. Unknown types fall
// back to the action URL's path prefix, then the dashboard.
func (s *NavigationService) Resolve(n models.Notification) Destination {
	switch n.Type {
	case models.NotificationTypeExpiryWarning,
		models.NotificationTypeNewOrder,
		models.NotificationTypePaymentReminder,
		models.NotificationTypeProcessingDelay:
		return Destination{View: ViewOrders, RecordID: n.RelatedID}
	case models.NotificationTypeProfileNeedsUpdate:
		return Destination{View: ViewWarehouse, RecordID: n.RelatedID}
	case models.NotificationTypeNewWarranty:
		return Destination{View: ViewWarranties, RecordID: n.RelatedID}
	}

	switch pathPrefix(n.ActionURL) {
	case ViewOrders:
		return Destination{View: ViewOrders, RecordID: n.RelatedID}
	case ViewWarehouse:
		return Destination{View: ViewWarehouse, RecordID: n.RelatedID}
	case ViewWarranties:
		return Destination{View: ViewWarranties, RecordID: n.RelatedID}
	}
	return Destination{View: ViewDashboard}
}

// Dispatch resolves the destination and emits the routing signals. The focus
// signal is only sent after the sink acknowledges the tab switch.
func (s *NavigationService) Dispatch(ctx context.Context, n models.Notification) (Destination, error) {
	d := s.Resolve(n)

	params := map[string]string{"view": d.View}
	if d.RecordID != "" {
		params[recordParam(d.View)] = d.RecordID
	}
	s.sink.UpdateQuery(d.View, params)

	if err := s.sink.SwitchTab(ctx, d.View); err != nil {
		return d, fmt.Errorf("switch tab to %s: %w", d.View, err)
	}

	if d.RecordID != "" {
		s.sink.FocusRecord(d.View, d.RecordID)
	}
	return d, nil
}

func recordParam(view string) string {
	switch view {
	case ViewOrders:
		return "orderId"
	case ViewWarehouse:
		return "itemId"
	case ViewWarranties:
		return "warrantyId"
	}
	return "recordId"
}

func pathPrefix(actionURL string) string {
	trimmed := strings.TrimPrefix(actionURL, "/")
	if trimmed == "" {
		return ""
	}
	if i := strings.IndexAny(trimmed, "/?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

// LogSink is the default NavigationSink: it records routing signals in the
// logs and acknowledges tab switches immediately. Real presentation layers
// supply their own sink.
type LogSink struct{}

func (LogSink) UpdateQuery(view string, params map[string]string) {
	logger.WithFields(map[string]interface{}{"view": view, "params": params}).Debug("Navigation query updated")
}

func (LogSink) SwitchTab(ctx context.Context, view string) error {
	logger.WithFields(map[string]interface{}{"view": view}).Info("Tab switch requested")
	return nil
}

func (LogSink) FocusRecord(view, recordID string) {
	logger.WithFields(map[string]interface{}{"view": view, "record_id": recordID}).Info("Record focus requested")
}
