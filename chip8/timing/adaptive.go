package timing

import (
	"log/slog"
	"time"
)

// AdaptiveLimiter sleeps for most of the frame and busy-waits the last
// stretch, correcting drift every second.
type AdaptiveLimiter struct {
	frameTime time.Duration
	next      time.Time
	started   time.Time
	frames    int64
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	now := time.Now()
	return &AdaptiveLimiter{
		frameTime: FrameDuration(),
		next:      now,
		started:   now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	remaining := a.next.Sub(now)

	switch {
	case remaining > 2*time.Millisecond:
		time.Sleep(remaining - time.Millisecond)
		a.spin()
	case remaining > 0:
		a.spin()
	case remaining < -5*time.Millisecond:
		// too far behind, don't try to catch up
		a.next = now
	}

	a.next = a.next.Add(a.frameTime)
	a.frames++

	if a.frames%TimerFrequency == 0 {
		drift := time.Since(a.next)
		if drift.Abs() > 10*time.Millisecond {
			a.next = a.next.Add(drift / 10)
			elapsed := time.Since(a.started).Seconds()
			slog.Debug("Frame timing drift correction",
				"drift_ms", drift.Milliseconds(),
				"fps", float64(a.frames)/elapsed)
		}
	}
}

func (a *AdaptiveLimiter) spin() {
	for time.Now().Before(a.next) {
	}
}

func (a *AdaptiveLimiter) Reset() {
	now := time.Now()
	a.next = now
	a.started = now
	a.frames = 0
}
