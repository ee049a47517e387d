package treemorph

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated in debug mode.
type debugStats struct {
	classifyTime    time.Duration
	interpolateTime time.Duration
	rotateTime      time.Duration
	particleCount   int
	mode            Mode
}

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug.Load() {
		return
	}
	total := stats.classifyTime + stats.interpolateTime + stats.rotateTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[treemorph] classify: %v | interpolate: %v | rotate: %v | total: %v\n",
		stats.classifyTime, stats.interpolateTime, stats.rotateTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[treemorph] mode: %s | particles: %d | theme: %s\n",
		stats.mode, stats.particleCount, s.theme.Name)
}

// debugWarnf prints a warning to stderr.
func (s *Scene) debugWarnf(format string, args ...any) {
	warnf(format, args...)
}

func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[treemorph] warning: "+format+"\n", args...)
}
