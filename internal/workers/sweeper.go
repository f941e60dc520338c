package workers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"openfleet/fleetkeeper/internal/logging"

	"golang.org/x/sync/errgroup"
)

const (
	// exportRetention is how long packaged export archives stay downloadable.
	exportRetention = 1 * time.Hour
	// scratchRetention covers extraction dirs left behind by crashed imports.
	scratchRetention = 6 * time.Hour

	sweepInterval = 10 * time.Minute
)

// Sweeper periodically removes expired export archives and orphaned
// import scratch directories.
type Sweeper struct {
	exportDir  string
	scratchDir string
}

func NewSweeper(exportDir, scratchDir string) *Sweeper {
	return &Sweeper{exportDir: exportDir, scratchDir: scratchDir}
}

// Start runs both sweep loops until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.loop(ctx, func() { s.sweepExports() })
	})
	g.Go(func() error {
		return s.loop(ctx, func() { s.sweepScratch() })
	})

	return g.Wait()
}

func (s *Sweeper) loop(ctx context.Context, sweep func()) error {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sweep()
		}
	}
}

func (s *Sweeper) sweepExports() {
	removed := sweepDir(s.exportDir, exportRetention, func(entry os.DirEntry) bool {
		return !entry.IsDir() && strings.HasSuffix(entry.Name(), ".zip")
	})
	if removed > 0 {
		logging.Info("Swept expired export archives", "removed", removed)
	}
}

func (s *Sweeper) sweepScratch() {
	removed := sweepDir(s.scratchDir, scratchRetention, func(entry os.DirEntry) bool {
		return entry.IsDir() && strings.HasPrefix(entry.Name(), "fleet-import-")
	})
	if removed > 0 {
		logging.Info("Swept orphaned import scratch dirs", "removed", removed)
	}
}

func sweepDir(dir string, retention time.Duration, match func(os.DirEntry) bool) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	removed := 0
	cutoff := time.Now().Add(-retention)
	for _, entry := range entries {
		if !match(entry) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			logging.Warn("Failed to remove expired entry", "path", entry.Name(), "error", err.Error())
			continue
		}
		removed++
	}
	return removed
}
