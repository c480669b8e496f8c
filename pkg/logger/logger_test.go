package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := out
	out = log.New(&buf, "", 0)
	t.Cleanup(func() { out = orig; Init("info") })
	return &buf
}

func TestInitLevelNames(t *testing.T) {
	for name, want := range map[string]string{
		"debug":    "debug",
		"WARN":     "warn",
		"warning":  "warn",
		"Error":    "error",
		"fatal":    "fatal",
		"":         "info",
		"nonsense": "info",
	} {
		Init(name)
		assert.Equal(t, want, LevelString(), "Init(%q)", name)
	}
	Init("info")
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)

	Init("warn")
	Debugf("dropped debug")
	Infof("dropped info")
	Warnf("kept warn %d", 1)
	Errorf("kept error")

	got := buf.String()
	assert.NotContains(t, got, "dropped debug")
	assert.NotContains(t, got, "dropped info")
	assert.Contains(t, got, "[WARN] kept warn 1")
	assert.Contains(t, got, "[ERROR] kept error")
}

func TestDebugEnabledAtDebugLevel(t *testing.T) {
	buf := capture(t)

	Init("debug")
	Debugf("visible")
	assert.Contains(t, buf.String(), "[DEBUG] visible")
}
