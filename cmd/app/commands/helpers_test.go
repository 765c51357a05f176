package commands

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestIO(input string) (IOTuple, *bytes.Buffer) {
	var out bytes.Buffer
	return IOTuple{Reader: strings.NewReader(input), Writer: &out}, &out
}

func TestParseFormat(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		got, err := parseFormat(format)
		require.NoError(t, err)
		assert.Equal(t, format, got)
	}

	_, err := parseFormat("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestReadLine(t *testing.T) {
	t.Run("first line without line ending", func(t *testing.T) {
		ioTuple, _ := newTestIO("s3cret\r\nignored\n")
		line, err := readLine(ioTuple, "password")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", line)
	})

	t.Run("input without trailing newline", func(t *testing.T) {
		ioTuple, _ := newTestIO("s3cret")
		line, err := readLine(ioTuple, "password")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", line)
	})

	t.Run("empty input", func(t *testing.T) {
		ioTuple, _ := newTestIO("")
		_, err := readLine(ioTuple, "password")
		require.Error(t, err)
	})

	t.Run("blank line", func(t *testing.T) {
		ioTuple, _ := newTestIO("\n")
		_, err := readLine(ioTuple, "password")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password is required")
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := readLine(IOTuple{Writer: io.Discard}, "secret")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret is required")
	})
}

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeJSON(&out, map[string]int{"cost": 12}))
	assert.Equal(t, "{\n  \"cost\": 12\n}\n", out.String())

	err := writeJSON(&out, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}
