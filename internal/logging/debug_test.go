package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := debugOutput
	debugOutput = buf
	t.Cleanup(func() { debugOutput = prev })
	return buf
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv("TODO_DEBUG", "")
	assert.False(t, DebugEnabled(), "empty TODO_DEBUG disables debug output")

	t.Setenv("TODO_DEBUG", "1")
	assert.True(t, DebugEnabled())

	t.Setenv("TODO_DEBUG", "true")
	assert.True(t, DebugEnabled())
}

func TestDebugf(t *testing.T) {
	buf := captureDebug(t)

	t.Setenv("TODO_DEBUG", "")
	Debugf("hidden %s", "message")
	assert.Empty(t, buf.String())

	t.Setenv("TODO_DEBUG", "1")
	Debugf("visible %s", "message")
	assert.Equal(t, "visible message", buf.String())
}

func TestDebugln(t *testing.T) {
	buf := captureDebug(t)

	t.Setenv("TODO_DEBUG", "")
	Debugln("hidden")
	assert.Empty(t, buf.String())

	t.Setenv("TODO_DEBUG", "1")
	Debugln("visible")
	assert.Equal(t, "visible\n", buf.String())
}
