package session

import "testing"

func TestCountdown_TimeoutAfterExactlyBudgetTicks(t *testing.T) {
	c := NewCountdown(5)

	for i := 0; i < 4; i++ {
		if ev := c.Tick(); ev == TickTimeout {
			t.Fatalf("timeout fired early on tick %d", i+1)
		}
	}
	if ev := c.Tick(); ev != TickTimeout {
		t.Errorf("tick 5 = %v, want TickTimeout", ev)
	}
	if c.TimeLeft != 0 {
		t.Errorf("TimeLeft = %d, want 0", c.TimeLeft)
	}
	if c.Elapsed() != 5 {
		t.Errorf("Elapsed() = %d, want full budget", c.Elapsed())
	}
}

func TestCountdown_NoTickAfterTerminal(t *testing.T) {
	c := NewCountdown(3)
	for !c.Stopped() {
		c.Tick()
	}

	before := c.TimeLeft
	for i := 0; i < 10; i++ {
		if ev := c.Tick(); ev != TickNone {
			t.Errorf("tick after terminal produced event %v", ev)
		}
	}
	if c.TimeLeft != before {
		t.Errorf("TimeLeft mutated after terminal: %d -> %d", before, c.TimeLeft)
	}
}

func TestCountdown_StopPreventsTimeout(t *testing.T) {
	c := NewCountdown(2)
	c.Tick()
	c.Stop()

	if ev := c.Tick(); ev != TickNone {
		t.Errorf("tick after Stop = %v, want TickNone", ev)
	}
	if c.TimeLeft != 1 {
		t.Errorf("TimeLeft = %d, want 1 (frozen at stop)", c.TimeLeft)
	}
}

func TestCountdown_WarningFiresOnceAtThreshold(t *testing.T) {
	c := NewCountdown(13)

	var warnings int
	var warnedAt int
	for !c.Stopped() {
		before := c.TimeLeft
		if c.Tick() == TickWarning {
			warnings++
			warnedAt = before
		}
	}
	if warnings != 1 {
		t.Errorf("warning fired %d times, want 1", warnings)
	}
	if warnedAt != WarningThreshold {
		t.Errorf("warning fired at TimeLeft=%d, want %d", warnedAt, WarningThreshold)
	}
}

func TestCountdown_ShortBudgetWarnsOnFirstTick(t *testing.T) {
	// An 11-second budget sits exactly on the threshold at start.
	c := NewCountdown(WarningThreshold)
	if ev := c.Tick(); ev != TickWarning {
		t.Errorf("first tick = %v, want TickWarning", ev)
	}
}

func TestCountdown_PauseGatesTicks(t *testing.T) {
	c := NewCountdown(10)
	c.Tick()
	c.TogglePause()

	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if c.TimeLeft != 9 {
		t.Errorf("TimeLeft = %d, want 9 (frozen while paused)", c.TimeLeft)
	}

	// Pause then immediate resume leaves TimeLeft unchanged.
	c.TogglePause()
	if c.TimeLeft != 9 {
		t.Errorf("TimeLeft = %d after resume, want 9", c.TimeLeft)
	}

	if c.Tick(); c.TimeLeft != 8 {
		t.Errorf("TimeLeft = %d after resumed tick, want 8", c.TimeLeft)
	}
}

func TestCountdown_PausePreservesWarningArm(t *testing.T) {
	c := NewCountdown(12)
	c.Tick() // 12 -> 11
	c.TogglePause()
	c.TogglePause()

	if ev := c.Tick(); ev != TickWarning {
		t.Errorf("tick at threshold after pause/resume = %v, want TickWarning", ev)
	}
}
