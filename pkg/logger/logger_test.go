package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type traceKey struct{}

func traceFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "restaurant", traceFromCtx)

	ctx := context.WithValue(context.Background(), traceKey{}, "abc123")
	log.Debug(ctx, "hidden")
	log.Info(ctx, "order placed", "table_id", 5, "items", 2)
	log.Error(context.Background(), "boom", "error", "bad")

	recs := records(t, &buf)
	require.Len(t, recs, 2)

	assert.Equal(t, "order placed", recs[0]["msg"])
	assert.Equal(t, "info", recs[0]["level"])
	assert.Equal(t, "restaurant", recs[0]["service"])
	assert.Equal(t, "abc123", recs[0]["trace_id"])
	assert.EqualValues(t, 5, recs[0]["table_id"])

	assert.Equal(t, "error", recs[1]["level"])
	assert.NotContains(t, recs[1], "trace_id")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug": LevelDebug,
		"":      LevelInfo,
		"INFO":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}
