package session

// WarningThreshold is the remaining-seconds value at which the warning
// cue fires, once per question.
const WarningThreshold = 11

// TickEvent is the observable effect of a single countdown tick.
type TickEvent int

const (
	TickNone TickEvent = iota
	TickWarning
	TickTimeout
)

// Countdown drives the visible timer for the current question. It holds
// no clock of its own: the caller delivers one Tick per elapsed second,
// which makes the engine deterministic under test. Once a terminal
// event has fired (timeout, or Stop on done/skip), further ticks are
// ignored; no tick may mutate TimeLeft after the question resolved.
type Countdown struct {
	Budget   int
	TimeLeft int
	Paused   bool

	warningFired bool
	stopped      bool
}

// NewCountdown creates an engine for one question with the allocated
// budget. Each question starts unpaused with the warning re-armed.
func NewCountdown(budget int) *Countdown {
	return &Countdown{Budget: budget, TimeLeft: budget}
}

// Tick advances the countdown by one second. While paused or after a
// terminal event it is a no-op. The warning fires exactly once, on the
// tick where WarningThreshold seconds remain before the decrement.
// When the budget is exhausted the engine marks itself terminal and
// reports TickTimeout; the caller resolves the question with the
// timeout status.
func (c *Countdown) Tick() TickEvent {
	if c.stopped || c.Paused {
		return TickNone
	}
	if c.TimeLeft <= 1 {
		c.TimeLeft = 0
		c.stopped = true
		return TickTimeout
	}
	ev := TickNone
	if c.TimeLeft == WarningThreshold && !c.warningFired {
		c.warningFired = true
		ev = TickWarning
	}
	c.TimeLeft--
	return ev
}

// Stop marks the engine terminal for a user action (done/skip). It must
// be called before the question advances so a late tick cannot race the
// transition.
func (c *Countdown) Stop() {
	c.stopped = true
}

// Stopped reports whether a terminal event has fired.
func (c *Countdown) Stopped() bool {
	return c.stopped
}

// TogglePause flips the pause state. Pausing halts ticking without
// resetting TimeLeft or the warning arm; resuming continues from the
// exact remaining value.
func (c *Countdown) TogglePause() {
	c.Paused = !c.Paused
}

// Elapsed returns the seconds consumed so far.
func (c *Countdown) Elapsed() int {
	return c.Budget - c.TimeLeft
}
