package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	eventbus "github.com/hanpama/rcforest/internal/eventbus"
	events "github.com/hanpama/rcforest/internal/events"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
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

func TestSubscribe(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var buf bytes.Buffer
	unsubscribe := Subscribe(NewJSONLogger(&buf, slog.LevelDebug))

	ctx := context.Background()
	eventbus.Publish(ctx, events.UpdateFinish{Trees: 3, TotalUpdates: 1})
	eventbus.Publish(ctx, events.TraversalFinish{Variant: events.VariantCollect, Trees: 3, Visited: 1, Err: errors.New("boom")})
	unsubscribe()
	eventbus.Publish(ctx, events.UpdateFinish{Trees: 3, TotalUpdates: 2})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	require.Equal(t, "DEBUG", lines[0]["level"])
	require.Equal(t, "forest update", lines[0]["msg"])
	require.Equal(t, float64(1), lines[0]["total_updates"])

	require.Equal(t, "ERROR", lines[1]["level"])
	require.Equal(t, "forest traversal failed", lines[1]["msg"])
	require.Equal(t, "collect", lines[1]["variant"])
	require.Equal(t, "boom", lines[1]["error"])
}

func TestSubscribe_LevelFilter(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var buf bytes.Buffer
	defer Subscribe(NewJSONLogger(&buf, slog.LevelInfo))()

	eventbus.Publish(context.Background(), events.UpdateFinish{Trees: 1, TotalUpdates: 1})
	require.Empty(t, buf.String())
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NoOpLogger{}
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x", "k", 1)
}
