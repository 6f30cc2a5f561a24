package cleanup

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/killallgit/waveform-comments/internal/models"
	"gorm.io/gorm"
)

// Service purges soft-deleted comments once they have been deleted for
// longer than the retention window
type Service struct {
	db        *gorm.DB
	retention time.Duration
	interval  time.Duration
	now       func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB, retention, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{
		db:        db,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

// Start runs a purge now and then every interval until Stop or ctx ends.
// Calling Start on a running service is a no-op.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.run(ctx)
		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-ctx.Done():
				log.Println("[INFO] Cleanup service stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Cleanup service started (interval: %v, retention: %v)", s.interval, s.retention)
}

// Stop stops the service and waits for a running purge to finish
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Service) run(ctx context.Context) {
	purged, err := s.Purge(ctx)
	if err != nil {
		log.Printf("[ERROR] Cleanup purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("[INFO] Purged %d deleted comment(s)", purged)
	}
}

// Purge hard-deletes comments soft-deleted before now minus the retention
// window and returns how many rows went. Their markers were already removed
// when the comment was deleted.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.retention)

	result := s.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&models.Comment{})
	if result.Error != nil {
		return 0, fmt.Errorf("purging deleted comments: %w", result.Error)
	}
	return result.RowsAffected, nil
}
