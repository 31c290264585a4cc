package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("skipped %d", 1)
	log.Warn("slot %s is full", "13:00:00")

	out := buf.String()
	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, "slot 13:00:00 is full")
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := t.TempDir() + "/logs/app.log"

	log, err := New(path, "info")
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, log.Close())

	assert.FileExists(t, path)
}
