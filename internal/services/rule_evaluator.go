package services

import (
	"fmt"
	"time"

	"github.com/stockroomhq/stockroom/backend/internal/models"
)

// RuleEvaluator maps entity snapshots to candidate notifications. Every
// category method is pure given (entities, settings, now): no clocks, no
// stores, no side effects. Re-running against the same input yields the same
// ids, which is what the reconciliation merge relies on.
type RuleEvaluator struct{}

func NewRuleEvaluator() *RuleEvaluator {
	return &RuleEvaluator{}
}

// Evaluate runs all six categories and returns the combined candidate set.
func (e *RuleEvaluator) Evaluate(snap *models.Snapshot, settings models.NotificationSettings, now time.Time) []models.Notification {
	var candidates []models.Notification
	if settings.EnableExpiryWarnings {
		candidates = append(candidates, e.ExpiryWarnings(snap.Orders, settings.ExpiryWarningDays, now)...)
	}
	if settings.EnableNewOrderNotifications {
		candidates = append(candidates, e.NewOrders(snap.Orders, now)...)
	}
	if settings.EnablePaymentReminders {
		candidates = append(candidates, e.PaymentReminders(snap.Orders, now)...)
	}
	candidates = append(candidates, e.ProcessingDelays(snap.Orders, now)...)
	candidates = append(candidates, e.ProfileUpdates(snap.Items, now)...)
	candidates = append(candidates, e.NewWarranties(snap.Warranties, now)...)
	return candidates
}

// ExpiryWarnings flags completed orders whose expiry date falls inside the
// warning window. Days-left <= 3 is high, <= 7 medium, anything further low.
func (e *RuleEvaluator) ExpiryWarnings(orders []models.Order, warningDays int, now time.Time) []models.Notification {
	var out []models.Notification
	cutoff := now.AddDate(0, 0, warningDays)
	for _, o := range orders {
		if o.Status != models.OrderStatusCompleted || o.ExpiryDate == nil {
			continue
		}
		if o.ExpiryDate.After(cutoff) {
			continue
		}
		daysLeft := int(o.ExpiryDate.Sub(now).Hours() / 24)
		priority := models.PriorityLow
		switch {
		case daysLeft <= 3:
			priority = models.PriorityHigh
		case daysLeft <= 7:
			priority = models.PriorityMedium
		}
		out = append(out, models.Notification{
			ID:        models.NotificationKey(models.NotificationTypeExpiryWarning, o.ID),
			Type:      models.NotificationTypeExpiryWarning,
			Title:     "Order expiring soon",
			Message:   fmt.Sprintf("Order %s expires in %d days", o.Code, daysLeft),
			Priority:  priority,
			CreatedAt: now,
			RelatedID: o.ID,
			ActionURL: "/orders/" + o.ID,
		})
	}
	return out
}

// NewOrders flags orders created on the current calendar day that are still
// processing. "Today" is a local-date match, not a rolling 24h window.
func (e *RuleEvaluator) NewOrders(orders []models.Order, now time.Time) []models.Notification {
	var out []models.Notification
	for _, o := range orders {
		if o.Status != models.OrderStatusProcessing || !sameCalendarDay(o.CreatedAt, now) {
			continue
		}
		out = append(out, models.Notification{
			ID:        models.NotificationKey(models.NotificationTypeNewOrder, o.ID),
			Type:      models.NotificationTypeNewOrder,
			Title:     "New order received",
			Message:   fmt.Sprintf("Order %s was created today and is waiting to be processed", o.Code),
			Priority:  models.PriorityMedium,
			CreatedAt: now,
			RelatedID: o.ID,
			ActionURL: "/orders/" + o.ID,
		})
	}
	return out
}

// PaymentReminders flags processing orders left unpaid for at least three
// days of wall-clock time since creation.
func (e *RuleEvaluator) PaymentReminders(orders []models.Order, now time.Time) []models.Notification {
	var out []models.Notification
	for _, o := range orders {
		if o.PaymentStatus != models.PaymentStatusUnpaid || o.Status != models.OrderStatusProcessing {
			continue
		}
		elapsed := now.Sub(o.CreatedAt)
		if elapsed < 3*24*time.Hour {
			continue
		}
		days := int(elapsed.Hours() / 24)
		out = append(out, models.Notification{
			ID:        models.NotificationKey(models.NotificationTypePaymentReminder, o.ID),
			Type:      models.NotificationTypePaymentReminder,
			Title:     "Payment outstanding",
			Message:   fmt.Sprintf("Order %s has been unpaid for %d days", o.Code, days),
			Priority:  models.PriorityHigh,
			CreatedAt: now,
			RelatedID: o.ID,
			ActionURL: "/orders/" + o.ID,
		})
	}
	return out
}

// ProcessingDelays flags orders stuck in processing for an hour or more.
// 24h elapsed is high, 4h medium, under that low.
func (e *RuleEvaluator) ProcessingDelays(orders []models.Order, now time.Time) []models.Notification {
	var out []models.Notification
	for _, o := range orders {
		if o.Status != models.OrderStatusProcessing {
			continue
		}
		elapsed := now.Sub(o.CreatedAt)
		if elapsed < time.Hour {
			continue
		}
		hours := int(elapsed.Hours())
		priority := models.PriorityLow
		switch {
		case elapsed >= 24*time.Hour:
			priority = models.PriorityHigh
		case elapsed >= 4*time.Hour:
			priority = models.PriorityMedium
		}
		out = append(out, models.Notification{
			ID:        models.NotificationKey(models.NotificationTypeProcessingDelay, o.ID),
			Type:      models.NotificationTypeProcessingDelay,
			Title:     "Order processing delayed",
			Message:   fmt.Sprintf("Order %s has been processing for %d hours", o.Code, hours),
			Priority:  priority,
			CreatedAt: now,
			RelatedID: o.ID,
			ActionURL: "/orders/" + o.ID,
		})
	}
	return out
}

// ProfileUpdates flags account-based inventory items carrying profiles marked
// for update. Three or more flagged profiles escalates to high.
func (e *RuleEvaluator) ProfileUpdates(items []models.InventoryItem, now time.Time) []models.Notification {
	var out []models.Notification
	for _, item := range items {
		if !item.AccountBased {
			continue
		}
		flagged := 0
		for _, p := range item.Profiles {
			if p.NeedsUpdate {
				flagged++
			}
		}
		if flagged == 0 {
			continue
		}
		priority := models.PriorityMedium
		if flagged >= 3 {
			priority = models.PriorityHigh
		}
		out = append(out, models.Notification{
			ID:        models.NotificationKey(models.NotificationTypeProfileNeedsUpdate, item.ID),
			Type:      models.NotificationTypeProfileNeedsUpdate,
			Title:     "Profiles need updating",
			Message:   fmt.Sprintf("%s has %d profiles that need an update", item.Name, flagged),
			Priority:  priority,
			CreatedAt: now,
			RelatedID: item.ID,
			ActionURL: "/warehouse/" + item.ID,
		})
	}
	return out
}

// NewWarranties flags warranties created on the current calendar day that are
// still pending.
func (e *RuleEvaluator) NewWarranties(warranties []models.Warranty, now time.Time) []models.Notification {
	var out []models.Notification
	for _, w := range warranties {
		if w.Status != models.WarrantyStatusPending || !sameCalendarDay(w.CreatedAt, now) {
			continue
		}
		out = append(out, models.Notification{
			ID:        models.NotificationKey(models.NotificationTypeNewWarranty, w.ID),
			Type:      models.NotificationTypeNewWarranty,
			Title:     "New warranty registered",
			Message:   fmt.Sprintf("Warranty %s is pending activation", w.Code),
			Priority:  models.PriorityMedium,
			CreatedAt: now,
			RelatedID: w.ID,
			ActionURL: "/warranties/" + w.ID,
		})
	}
	return out
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
