package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobmatch.log")

	log, err := New(Options{JSON: true, Debug: true, File: path, Version: "1.2.3"})
	require.NoError(t, err)

	log.Debug("submit resume", WorkflowFields("resume", "Submitting")...)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))

	assert.Equal(t, "submit resume", entry["step"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "resume", entry[FieldWorkflow])
	assert.Equal(t, "Submitting", entry[FieldState])
}

func TestNewInfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobmatch.log")

	log, err := New(Options{JSON: true, File: path})
	require.NoError(t, err)

	log.Debug("hidden")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}
