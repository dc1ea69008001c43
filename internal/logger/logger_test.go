package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})).WithMatch("m-1")
	ctx := context.Background()

	l.LogLoad(ctx, 2, 3, nil)
	l.LogDeath(ctx, 4, "imp", errors.New("boom"))
	l.LogMatchEnd(ctx, 9, "dwarf", true)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2, "deaths are debug only")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "warriors loaded", rec["msg"])
	assert.Equal(t, "m-1", rec["match"])
	assert.EqualValues(t, 3, rec["warriors"])

	require.NoError(t, json.Unmarshal(lines[1], &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "dwarf", rec["survivors"])
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogLoad(context.Background(), 1, 0, errors.New("ignored"))
}
