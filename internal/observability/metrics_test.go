package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/board", "GET", 200, time.Millisecond)
	m.RecordRequest("/board", "GET", 200, time.Millisecond)
	m.RecordError("/commands", "POST", "FORBIDDEN")
	m.RecordCommand("swap_names", true, 2*time.Millisecond)
	m.RecordCommand("move_to_coordinate", false, 4*time.Millisecond)
	m.RecordCommand("move_to_coordinate", true, 2*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/board|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/commands|POST|FORBIDDEN"])
	require.Len(t, snap.Commands, 2)
	assert.Equal(t, CommandStats{Kind: "move_to_coordinate", Total: 2, Failed: 1, AvgMillis: 3}, snap.Commands[0])
	assert.Equal(t, "swap_names", snap.Commands[1].Kind)

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordCommand("x", true, 0) })
}
