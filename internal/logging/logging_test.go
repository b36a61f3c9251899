package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestNew_JSONHonorsLevelAndTimeFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: slog.LevelInfo, Format: FormatJSON})

	log.Debug("hidden")
	log.Info("shown", slog.String("k", "v"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	require.Equal(t, "shown", gjson.Get(lines[0], "msg").String())
	require.Equal(t, "v", gjson.Get(lines[0], "k").String())

	_, err := time.Parse(time.RFC3339, gjson.Get(lines[0], "time").String())
	require.NoError(t, err)
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{Level: slog.LevelDebug}).Debug("trace", slog.Int("n", 3))
	require.Contains(t, buf.String(), "msg=trace")
	require.Contains(t, buf.String(), "n=3")
}

func TestNew_NilWriterDiscards(t *testing.T) {
	log := New(nil, Options{})
	require.False(t, log.Enabled(t.Context(), slog.LevelError))
}

func TestOpenFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quill.log")
	f, err := OpenFile(path)
	require.NoError(t, err)

	New(f, Options{}).Info("hello")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=hello")
}
