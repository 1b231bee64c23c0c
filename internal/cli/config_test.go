package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadWatchConfig_AllFields(t *testing.T) {
	path := writeConfig(t, "interval: 500ms\ncount: 10\nformat: json\n")

	cfg, err := LoadWatchConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, 10, cfg.Count)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadWatchConfig_EmptyFileIsAllDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadWatchConfig(path)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Interval)
	assert.Equal(t, 0, cfg.Count)
	assert.Equal(t, "", cfg.Format)
}

func TestLoadWatchConfig_MissingFile(t *testing.T) {
	_, err := LoadWatchConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadWatchConfig_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, "interval: 1s\nintervall: 2s\n")

	_, err := LoadWatchConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadWatchConfig_InvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad interval syntax", "interval: soon\n", "invalid interval"},
		{"zero interval", "interval: 0s\n", "must be positive"},
		{"negative interval", "interval: -5s\n", "must be positive"},
		{"negative count", "count: -1\n", "must be non-negative"},
		{"bad format", "format: xml\n", "invalid format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := LoadWatchConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
