package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recording struct {
	lines []string
}

func (r *recording) Log(level Level, message string, keyvals ...any) {
	r.lines = append(r.lines, fmt.Sprintf("%s %s %v", level, message, keyvals))
}

func TestDispatch(t *testing.T) {
	Warn("before init")

	var a, b recording
	Init(&a, &b)
	t.Cleanup(func() { Init() })

	Info("step", "index", 3)
	Warn("tank above max level", "tank", "t1")

	want := []string{"info step [index 3]", "warn tank above max level [tank t1]"}
	assert.Equal(t, want, a.lines)
	assert.Equal(t, want, b.lines)

	Init()
	Error("dropped")
	assert.Len(t, a.lines, 2)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "fatal", LevelFatal.String())
	assert.Equal(t, "unknown", Level(42).String())
}
