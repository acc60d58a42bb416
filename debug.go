package parallax

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame timing and draw-call metrics.
type frameStats struct {
	frames        uint64
	traverseTime  time.Duration
	drawCallCount int

	// accumulated since the last log line
	windowFrames   int
	windowTraverse time.Duration
	windowDraws    int
}

func (s *frameStats) record(traverse time.Duration, draws int) {
	s.frames++
	s.traverseTime = traverse
	s.drawCallCount = draws
	s.windowFrames++
	s.windowTraverse += traverse
	s.windowDraws += draws
}

// debugLog logs averaged stats every interval frames and resets the window.
func (s *frameStats) debugLog(log *zap.Logger, interval int) {
	if interval <= 0 || s.windowFrames < interval {
		return
	}
	n := s.windowFrames
	log.Debug("frame stats",
		zap.Uint64("frame", s.frames),
		zap.Duration("traverse_avg", s.windowTraverse/time.Duration(n)),
		zap.Float64("draw_calls_avg", float64(s.windowDraws)/float64(n)),
	)
	s.windowFrames = 0
	s.windowTraverse = 0
	s.windowDraws = 0
}

// FrameStats is a snapshot of the most recent frame.
type FrameStats struct {
	Frame         uint64
	TraverseTime  time.Duration
	DrawCallCount int
}
