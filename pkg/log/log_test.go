package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := Init(ZapConfig{
		Level:    "info",
		Mode:     ModeProduction,
		Encoding: EncodingJSON,
		Service:  "sla-srv",
		Output:   &buf,
	})

	ctx := WithContext(context.Background(), l, "request_id", "req-1")
	l.Debugf(ctx, "hidden %d", 1)
	l.Infof(ctx, "internal.escalation.job.Scan: created=%d", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry[keyLevel])
	assert.Equal(t, "sla-srv", entry[keyName])
	assert.Equal(t, "internal.escalation.job.Scan: created=2", entry[keyMessage])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestParseLevelFallsBack(t *testing.T) {
	assert.Equal(t, parseLevel(DefaultLevel), parseLevel("loud"))
	assert.Equal(t, "warn", parseLevel("warn").String())
}

func TestNopLoggerIgnoresContextFields(t *testing.T) {
	l := NewNop()
	ctx := WithContext(context.Background(), l, "k", "v")
	assert.NotPanics(t, func() { l.Errorf(ctx, "boom %v", "x") })
}
