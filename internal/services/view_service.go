package services

import (
	"sort"

	"github.com/stockroomhq/stockroom/backend/internal/models"
)

type Tab string

const (
	TabActive   Tab = "active"
	TabArchived Tab = "archived"
)

// ViewOptions selects and shapes the displayed notification list.
// An empty Type or Priority means "all".
type ViewOptions struct {
	Tab      Tab
	Type     models.NotificationType
	Priority models.NotificationPriority
	// UnreadCountFilteredOnly limits group unread counters to the filtered
	// members. The default (false) counts across the group's full tab
	// membership, matching the historical panel behavior.
	UnreadCountFilteredOnly bool
}

// NotificationGroup is one display section. On the archived tab a single
// pseudo-group holds everything.
type NotificationGroup struct {
	Type          models.NotificationType `json:"type,omitempty"`
	Notifications []models.Notification   `json:"notifications"`
	Unread        int                     `json:"unread"`
	Total         int                     `json:"total"`
}

var categoryOrder = func() map[models.NotificationType]int {
	m := make(map[models.NotificationType]int, len(models.NotificationTypes))
	for i, t := range models.NotificationTypes {
		m[t] = i
	}
	return m
}()

// BuildNotificationView filters, sorts and groups the canonical set for
// display. Sorting is strictly descending by creation time and applies before
// grouping. Active-tab groups are ordered by high-priority count, then size,
// then category order.
func BuildNotificationView(all []models.Notification, opts ViewOptions) []NotificationGroup {
	if opts.Tab == "" {
		opts.Tab = TabActive
	}

	var tabList []models.Notification
	for _, n := range all {
		if (opts.Tab == TabArchived) == n.Archived {
			tabList = append(tabList, n)
		}
	}

	var filtered []models.Notification
	for _, n := range tabList {
		if opts.Type != "" && n.Type != opts.Type {
			continue
		}
		if opts.Priority != "" && n.Priority != opts.Priority {
			continue
		}
		filtered = append(filtered, n)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if opts.Tab == TabArchived {
		// Archived entries no longer need triage ordering.
		group := NotificationGroup{Notifications: filtered, Total: len(filtered)}
		for _, n := range filtered {
			if !n.Read {
				group.Unread++
			}
		}
		return []NotificationGroup{group}
	}

	byType := make(map[models.NotificationType]*NotificationGroup)
	var groups []*NotificationGroup
	for _, n := range filtered {
		g, ok := byType[n.Type]
		if !ok {
			g = &NotificationGroup{Type: n.Type}
			byType[n.Type] = g
			groups = append(groups, g)
		}
		g.Notifications = append(g.Notifications, n)
	}

	for _, g := range groups {
		g.Total = len(g.Notifications)
		if opts.UnreadCountFilteredOnly {
			for _, n := range g.Notifications {
				if !n.Read {
					g.Unread++
				}
			}
		} else {
			for _, n := range tabList {
				if n.Type == g.Type && !n.Read {
					g.Unread++
				}
			}
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		hi, hj := highCount(groups[i]), highCount(groups[j])
		if hi != hj {
			return hi > hj
		}
		if groups[i].Total != groups[j].Total {
			return groups[i].Total > groups[j].Total
		}
		return categoryOrder[groups[i].Type] < categoryOrder[groups[j].Type]
	})

	out := make([]NotificationGroup, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	return out
}

func highCount(g *NotificationGroup) int {
	count := 0
	for _, n := range g.Notifications {
		if n.Priority == models.PriorityHigh {
			count++
		}
	}
	return count
}
