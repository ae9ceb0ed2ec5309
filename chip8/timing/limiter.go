package timing

import "time"

// Limiter paces the frame loop.
type Limiter interface {
	// WaitForNextFrame blocks until the next frame is due.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset drops accumulated timing state, used after a pause.
	Reset()
}

// NewNoOpLimiter returns a limiter that never waits (headless mode, tests).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// TimerFrequency is the rate of the delay and sound timers, which is also
// the display refresh rate.
const TimerFrequency = 60

// FrameDuration returns the duration of a single 60Hz frame.
func FrameDuration() time.Duration {
	return time.Second / TimerFrequency
}

// CyclesPerTick returns how many instructions run between two timer ticks
// at the given instruction rate.
func CyclesPerTick(cycleRate int) int {
	return cycleRate / TimerFrequency
}
