package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stockroomhq/stockroom/backend/internal/logger"
)

// Scheduler drives periodic notification generation plus on-demand runs.
// Overlapping requests are serialized: a trigger that arrives while a cycle
// is running is coalesced into one queued-next run instead of running
// concurrently.
type Scheduler struct {
	svc      *NotificationService
	interval time.Duration
	cron     *cron.Cron

	mu      sync.Mutex
	running bool
	pending bool
}

func NewScheduler(svc *NotificationService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{svc: svc, interval: interval}
}

// Start begins the periodic generation loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), s.GenerateNow); err != nil {
		return fmt.Errorf("schedule generation: %w", err)
	}
	c.Start()
	s.cron = c
	return nil
}

// Stop cancels the periodic timer. In-flight cycles finish; no new ones
// start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c != nil {
		c.Stop()
	}
}

// GenerateNow requests a generation cycle. If one is already in flight the
// request collapses into a single follow-up run.
func (s *Scheduler) GenerateNow() {
	s.mu.Lock()
	if s.running {
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), s.interval)
		if err := s.svc.Generate(ctx, time.Now()); err != nil {
			logger.Log().WithError(err).Debug("Generation cycle aborted")
		}
		cancel()

		s.mu.Lock()
		if s.pending {
			s.pending = false
			s.mu.Unlock()
			continue
		}
		s.running = false
		s.mu.Unlock()
		return
	}
}
