package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message", "key", "arg")

	assert.Equal(t, "level=DEBUG msg=\"test message\" key=arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Info("test message")

	assert.Zero(t, buf.Len())
}

func TestWarnAndError_AlwaysEmitted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("careful", "n", 1)
	Error("broken", "error", "boom")

	out := buf.String()
	assert.Contains(t, out, "level=WARN msg=careful n=1")
	assert.Contains(t, out, "level=ERROR msg=broken error=boom")
	assert.NotContains(t, out, "time=")
}

func TestInfo_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("uploaded", "chunks", 3)

	assert.Equal(t, "level=INFO msg=uploaded chunks=3\n", buf.String())
}

func TestActive_FollowsSetOutput(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	active().Info("direct")

	assert.Contains(t, buf.String(), "msg=direct")
}
