package sweeper

import (
	"context"
	"time"

	"upload-gateway/internal/index"
	"upload-gateway/internal/logging"
	"upload-gateway/internal/storage"
)

// Sweeper deletes stored files once they outlive the retention window.
// It coordinates with the request handlers only through the filesystem:
// a file removed by a concurrent delete counts as already swept.
type Sweeper struct {
	store    *storage.Store
	idx      *index.Index
	maxAge   time.Duration
	interval time.Duration
	log      *logging.Logger
	now      func() time.Time
}

func New(store *storage.Store, idx *index.Index, maxAge time.Duration, log *logging.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		idx:      idx,
		maxAge:   maxAge,
		interval: time.Hour,
		log:      log,
		now:      time.Now,
	}
}

// Run sweeps immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("sweeper started", "interval", s.interval, "max_age", s.maxAge)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one retention pass. A scan error ends the pass; the next
// tick is the retry. Per-file delete failures are logged and skipped so
// one bad entry cannot abort the rest.
func (s *Sweeper) Sweep() {
	files, err := s.store.List()
	if err != nil {
		s.log.Error("retention scan failed", "dir", s.store.Dir(), "error", err)
		return
	}
	if err := s.idx.Rebuild(files); err != nil {
		s.log.Error("index rebuild failed", "error", err)
		return
	}

	expired, err := s.idx.ExpiredBefore(s.now().Add(-s.maxAge))
	if err != nil {
		s.log.Error("retention query failed", "error", err)
		return
	}

	removed := 0
	for _, name := range expired {
		if err := s.store.Remove(name); err != nil {
			s.log.Warn("retention delete failed", "file", name, "error", err)
			continue
		}
		if err := s.idx.Remove(name); err != nil {
			s.log.Warn("index update failed", "file", name, "error", err)
		}
		removed++
	}

	if removed > 0 {
		s.log.Info("retention sweep removed files", "count", removed)
	}
}
