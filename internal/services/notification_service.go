package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stockroomhq/stockroom/backend/internal/logger"
	"github.com/stockroomhq/stockroom/backend/internal/metrics"
	"github.com/stockroomhq/stockroom/backend/internal/models"
)

// remoteSyncTimeout bounds each detached mirror round-trip.
const remoteSyncTimeout = 15 * time.Second

// NotificationService owns the canonical in-memory notification set and the
// reconciliation merge that keeps it consistent across generation cycles,
// mirror loads and user actions.
//
// Merge invariants:
//   - at most one notification per (type, related_id) at any time
//   - an existing notification is never overwritten by a fresh candidate
//     with the same id
//   - read status is monotonic: once acknowledged, never unread again
//   - archiving is one-way; an archived id never re-enters the active set
type NotificationService struct {
	mu       sync.Mutex
	active   map[string]*models.Notification
	archived map[string]*models.Notification
	readIDs  map[string]struct{}

	snapshots  SnapshotProvider
	evaluator  *RuleEvaluator
	settings   *SettingsService
	readState  ReadStateStore
	mirror     RemoteMirror
	push       *PushService
	employeeID string
}

func NewNotificationService(
	snapshots SnapshotProvider,
	settings *SettingsService,
	readState ReadStateStore,
	mirror RemoteMirror,
	push *PushService,
	employeeID string,
) *NotificationService {
	return &NotificationService{
		active:     make(map[string]*models.Notification),
		archived:   make(map[string]*models.Notification),
		readIDs:    readState.Load(),
		snapshots:  snapshots,
		evaluator:  NewRuleEvaluator(),
		settings:   settings,
		readState:  readState,
		mirror:     mirror,
		push:       push,
		employeeID: employeeID,
	}
}

// LoadFromMirror primes the canonical set from the remote store. Failures are
// logged and leave the service local-only; they never block startup.
func (s *NotificationService) LoadFromMirror(ctx context.Context) {
	rows, err := s.mirror.Load(ctx, s.employeeID)
	if err != nil {
		metrics.IncRemoteSyncFailure()
		logger.Log().WithError(err).Warn("Failed to load notifications from remote mirror")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rows {
		n := rows[i]
		if _, ok := s.active[n.ID]; ok {
			continue
		}
		if _, ok := s.archived[n.ID]; ok {
			continue
		}
		if n.Archived {
			s.archived[n.ID] = &n
		} else {
			s.active[n.ID] = &n
		}
	}
	s.applyReadStateLocked()
}

// Generate runs one reconciliation cycle: snapshot, evaluate, merge, apply
// read-state, then kick off a detached remote sync. A snapshot failure aborts
// the cycle and leaves the previous canonical set untouched.
func (s *NotificationService) Generate(ctx context.Context, now time.Time) error {
	metrics.IncGenerationCycle()

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		metrics.IncGenerationFailure()
		logger.Log().WithError(err).Error("Snapshot read failed, keeping previous notification set")
		return fmt.Errorf("read snapshot: %w", err)
	}

	candidates := s.evaluator.Evaluate(snap, s.settings.Current(), now)
	metrics.AddCandidates(len(candidates))

	s.mu.Lock()
	var added []models.Notification
	for i := range candidates {
		c := candidates[i]
		c.EmployeeID = s.employeeID
		if _, ok := s.active[c.ID]; ok {
			metrics.IncDuplicateSuppressed()
			continue
		}
		if _, ok := s.archived[c.ID]; ok {
			metrics.IncDuplicateSuppressed()
			continue
		}
		s.active[c.ID] = &c
		added = append(added, c)
	}
	s.applyReadStateLocked()
	s.mu.Unlock()

	if len(added) > 0 && s.push != nil {
		go s.push.Announce(added)
	}

	// Detached: the UI sees local candidates immediately, the mirror catches
	// up in the background.
	go s.syncRemote(candidates)

	return nil
}

// syncRemote inserts candidates whose (type, related_id) pair is absent from
// the mirror. Any failure is logged and dropped.
func (s *NotificationService) syncRemote(candidates []models.Notification) {
	if len(candidates) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), remoteSyncTimeout)
	defer cancel()

	existing, err := s.mirror.ExistingKeys(ctx, s.employeeID)
	if err != nil {
		metrics.IncRemoteSyncFailure()
		logger.Log().WithError(err).Warn("Failed to query remote mirror keys")
		return
	}

	var missing []models.Notification
	s.mu.Lock()
	for _, c := range candidates {
		if _, ok := existing[MirrorKey(c.Type, c.RelatedID)]; ok {
			continue
		}
		c.EmployeeID = s.employeeID
		// The user may have archived the notification before its first
		// sync; the mirror row must not lose that.
		if _, ok := s.archived[c.ID]; ok {
			c.Archived = true
		}
		missing = append(missing, c)
	}
	s.mu.Unlock()
	if len(missing) == 0 {
		return
	}

	if err := s.mirror.Insert(ctx, missing); err != nil {
		metrics.IncRemoteSyncFailure()
		logger.Log().WithError(err).Warn("Failed to insert notifications into remote mirror")
	}
}

// MarkAsRead acknowledges a notification and persists the read-state set
// before returning, so the acknowledgment survives an immediate shutdown.
func (s *NotificationService) MarkAsRead(id string) error {
	s.mu.Lock()
	if n, ok := s.active[id]; ok {
		n.Read = true
	} else if n, ok := s.archived[id]; ok {
		n.Read = true
	}
	s.readIDs[id] = struct{}{}
	snapshot := s.copyReadIDsLocked()
	s.mu.Unlock()

	return s.readState.Save(snapshot)
}

// MarkAllAsRead acknowledges every notification currently in the canonical
// set.
func (s *NotificationService) MarkAllAsRead() error {
	s.mu.Lock()
	for id, n := range s.active {
		n.Read = true
		s.readIDs[id] = struct{}{}
	}
	for id, n := range s.archived {
		n.Read = true
		s.readIDs[id] = struct{}{}
	}
	snapshot := s.copyReadIDsLocked()
	s.mu.Unlock()

	return s.readState.Save(snapshot)
}

// Archive moves a notification out of the active set. The id stays in the
// canonical set so regeneration cannot resurrect it, and the mirror row is
// flagged so a restart reloads it into the archived tab.
func (s *NotificationService) Archive(id string) error {
	s.mu.Lock()
	n, ok := s.active[id]
	if !ok {
		_, already := s.archived[id]
		s.mu.Unlock()
		if already {
			return nil
		}
		return fmt.Errorf("notification %s not found", id)
	}
	n.Archived = true
	delete(s.active, id)
	s.archived[id] = n
	s.mu.Unlock()

	go s.archiveRemote(id)
	return nil
}

// archiveRemote flags the mirror row as archived. Same posture as the insert
// path: failures are logged and dropped, the local state is authoritative for
// the session.
func (s *NotificationService) archiveRemote(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteSyncTimeout)
	defer cancel()

	if err := s.mirror.MarkArchived(ctx, id); err != nil {
		metrics.IncRemoteSyncFailure()
		logger.Log().WithError(err).WithField("notification", id).Warn("Failed to archive notification in remote mirror")
	}
}

// Get returns a copy of one notification by id.
func (s *NotificationService) Get(id string) (models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.active[id]; ok {
		return *n, true
	}
	if n, ok := s.archived[id]; ok {
		return *n, true
	}
	return models.Notification{}, false
}

// All returns copies of every notification in the canonical set.
func (s *NotificationService) All() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.active)+len(s.archived))
	for _, n := range s.active {
		out = append(out, *n)
	}
	for _, n := range s.archived {
		out = append(out, *n)
	}
	return out
}

// View builds the display-ready grouped list for the given options.
func (s *NotificationService) View(opts ViewOptions) []NotificationGroup {
	return BuildNotificationView(s.All(), opts)
}

// UnreadCount reports unread notifications across the whole canonical set.
func (s *NotificationService) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.active {
		if !n.Read {
			count++
		}
	}
	for _, n := range s.archived {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *NotificationService) applyReadStateLocked() {
	for id := range s.readIDs {
		if n, ok := s.active[id]; ok {
			n.Read = true
		}
		if n, ok := s.archived[id]; ok {
			n.Read = true
		}
	}
}

func (s *NotificationService) copyReadIDsLocked() map[string]struct{} {
	out := make(map[string]struct{}, len(s.readIDs))
	for id := range s.readIDs {
		out[id] = struct{}{}
	}
	return out
}
