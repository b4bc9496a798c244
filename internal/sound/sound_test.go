package sound

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBellWritesBEL(t *testing.T) {
	var buf bytes.Buffer
	b := Bell{W: &buf}

	b.Play(CueWarning)
	b.Play(CueTimeout)

	assert.Equal(t, "\a\a", buf.String())
}

func TestBellNilWriter(t *testing.T) {
	assert.NotPanics(t, func() { Bell{}.Play(CueComplete) })
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestBellSwallowsWriteErrors(t *testing.T) {
	assert.NotPanics(t, func() { Bell{W: failWriter{}}.Play(CueTimeout) })
}
