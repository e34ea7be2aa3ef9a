package chip8

import "time"

// TimerHz is the fixed decrement rate of the delay and sound timers.
const TimerHz = 60

const tickInterval = time.Second / TimerHz

// timers schedules the 60 Hz timer ticks from a monotonic clock. The CPU
// cadence is decoupled from it: multiple instructions per timer tick is the
// normal case.
type timers struct {
	now  func() time.Time
	last time.Time
}

// advance returns the number of 60 Hz ticks that elapsed since the last
// call. The first call establishes the baseline and returns 0.
func (t *timers) advance() int {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	ticks := int(now.Sub(t.last) / tickInterval)
	if ticks > 0 {
		t.last = t.last.Add(time.Duration(ticks) * tickInterval)
	}
	return ticks
}

func (t *timers) reset() {
	t.last = time.Time{}
}

// tickTimers decrements the delay and sound timers for one 60 Hz tick and
// reports the tone state transition when the sound timer runs out.
func (c *Chip8) tickTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
		if c.st == 0 && c.audioFn != nil {
			c.audioFn(false)
		}
	}
}

// setSoundTimer writes the sound timer and reports tone transitions to the
// host callback.
func (c *Chip8) setSoundTimer(value byte) {
	was := c.st > 0
	c.st = value
	if on := c.st > 0; on != was && c.audioFn != nil {
		c.audioFn(on)
	}
}
