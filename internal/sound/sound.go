// Package sound emits audible cues for timer events. A terminal can
// only ring the bell, so every cue maps to BEL; the Cue type exists so
// screens stay declarative about what happened rather than when to
// beep.
package sound

import "io"

// Cue identifies a timer event worth hearing.
type Cue string

const (
	CueWarning  Cue = "warning"  // countdown crossed the warning threshold
	CueTimeout  Cue = "timeout"  // a question ran out of time
	CueComplete Cue = "complete" // the whole practice run finished
)

// Sink plays cues. Implementations must be safe to call from the
// update loop and must never block.
type Sink interface {
	Play(cue Cue)
}

// Bell writes the terminal bell for every cue. Write errors are
// swallowed: a failed beep is not worth interrupting practice for.
type Bell struct {
	W io.Writer
}

func (b Bell) Play(Cue) {
	if b.W == nil {
		return
	}
	b.W.Write([]byte{'\a'})
}

// Nop discards all cues, for muted mode and tests.
type Nop struct{}

func (Nop) Play(Cue) {}
