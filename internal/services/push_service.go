package services

import (
	"fmt"

	"github.com/containrrr/shoutrrr"

	"github.com/stockroomhq/stockroom/backend/internal/logger"
	"github.com/stockroomhq/stockroom/backend/internal/models"
)

// PushService forwards freshly surfaced alerts to external channels
// (shoutrrr URLs: discord, telegram, smtp, ...). Delivery is strictly
// best-effort; failures are logged and swallowed so the panel never degrades
// because a chat webhook is down.
type PushService struct {
	urls []string
}

func NewPushService(urls []string) *PushService {
	if len(urls) == 0 {
		return nil
	}
	return &PushService{urls: urls}
}

// Announce sends one message per new notification to every configured URL.
func (s *PushService) Announce(notifications []models.Notification) {
	for _, n := range notifications {
		msg := fmt.Sprintf("%s\n\n%s", n.Title, n.Message)
		for _, url := range s.urls {
			if err := shoutrrr.Send(url, msg); err != nil {
				logger.Log().WithError(err).WithField("notification", n.ID).Warn("Failed to push notification")
			}
		}
	}
}
