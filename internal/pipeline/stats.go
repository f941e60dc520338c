package pipeline

import (
	"runtime"
	"time"

	"openfleet/fleetkeeper/internal/models/dtos"
)

// runStats collects the statistics attached to every result, including runs
// that fail validation before a transaction is opened.
type runStats struct {
	start time.Time
	items int
	errs  int
}

func newRunStats() *runStats {
	return &runStats{start: time.Now()}
}

func (s *runStats) snapshot() map[string]float64 {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return map[string]float64{
		dtos.StatItems:        float64(s.items),
		dtos.StatErrors:       float64(s.errs),
		dtos.StatSeconds:      time.Since(s.start).Seconds(),
		dtos.StatPeakMemoryMB: float64(mem.HeapAlloc) / (1024 * 1024),
	}
}
