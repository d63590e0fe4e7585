package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/shelfscribe/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "shelfscribe.log")
	log, err := logging.New("info", path, false)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("visible")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "shelfscribe", entry["logger"])
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	log, err := logging.New("warn", path, true)
	require.NoError(t, err)
	log.Debug("now visible")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "now visible")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := logging.New("chatty", filepath.Join(t.TempDir(), "x.log"), false)
	assert.Error(t, err)
}

func TestNew_EmptyFileIsNop(t *testing.T) {
	log, err := logging.New("debug", "", true)
	require.NoError(t, err)
	log.Info("dropped")
}
