package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Reaper removes sessions that were never cleaned up by their client.
type Reaper struct {
	storage  *Storage
	maxAge   time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewReaper creates a Reaper. A maxAge of zero disables it: Sweep removes
// nothing and Run returns immediately.
func NewReaper(storage *Storage, maxAge, interval time.Duration, logger *slog.Logger) *Reaper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reaper{
		storage:  storage,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled reports whether the reaper removes anything.
func (r *Reaper) Enabled() bool {
	return r.maxAge > 0 && r.interval > 0
}

// Sweep removes every session directory, in either root, last modified
// before now minus maxAge. Entries that are not session ids are left alone.
// Returns the number of directories removed.
func (r *Reaper) Sweep(now time.Time) (int, error) {
	if !r.Enabled() {
		return 0, nil
	}

	cutoff := now.Add(-r.maxAge)
	uploadRoot, outputRoot := r.storage.Roots()

	removed := 0
	var errs []error
	for _, root := range []string{uploadRoot, outputRoot} {
		n, err := sweepRoot(root, cutoff)
		removed += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return removed, errors.Join(errs...)
}

func sweepRoot(root string, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, err
	}

	removed := 0
	var errs []error
	for _, entry := range entries {
		if !entry.IsDir() || !ValidID(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue // removed concurrently
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// Run sweeps every interval until ctx is done. Always returns nil so it
// can share an errgroup with the HTTP server without stopping it.
func (r *Reaper) Run(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}

	r.logger.Info("session reaper started", "maxAge", r.maxAge, "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed, err := r.Sweep(r.now())
			if err != nil {
				r.logger.Warn("session sweep incomplete", "removed", removed, "error", err)
				continue
			}
			if removed > 0 {
				r.logger.Info("expired sessions removed", "removed", removed)
			}
		}
	}
}
