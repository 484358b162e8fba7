package drift

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timings and subscription counts.
// Only populated when Stage.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	listeners  int
	phase      PagePhase
}

// debugLog prints timing and subscription stats to stderr.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[drift] update: %v | draw: %v | total: %v\n",
		stats.updateTime, stats.drawTime, stats.updateTime+stats.drawTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[drift] phase: %s | scroll listeners: %d\n",
		stats.phase, stats.listeners)
}
