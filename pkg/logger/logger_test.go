package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: " WARN ", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, parseLevel(tt.in).Level())
		})
	}
}

func TestOutputWithoutFileIsStdout(t *testing.T) {
	require.Equal(t, io.Writer(os.Stdout), output(Options{}))
}

func TestOutputWithFileWritesRotatingSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cspark.log")
	w := output(Options{File: path, MaxSizeMB: 1})

	_, err := w.Write([]byte("{\"msg\":\"hello\"}\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
}
