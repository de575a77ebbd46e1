package detect

import "time"

// DefaultFrameInterval approximates one display frame.
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler provides the two suspension points of the detector: a one-shot
// delay, and a yield until the next render opportunity.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
	NextFrame(f func())
}

type timerScheduler struct {
	frame time.Duration
}

// NewScheduler returns a Scheduler backed by runtime timers. NextFrame fires
// on the next frame boundary of the given interval.
func NewScheduler(frame time.Duration) Scheduler {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return timerScheduler{frame: frame}
}

func (s timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

func (s timerScheduler) NextFrame(f func()) {
	now := time.Now()
	wait := now.Truncate(s.frame).Add(s.frame).Sub(now)
	time.AfterFunc(wait, f)
}
