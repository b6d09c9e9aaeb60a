package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceRecordsEventsWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrace(&buf, false)

	tr.Emit(LevelScope, "push scope %d", 1)
	tr.Emit(LevelDrop, "drop %s", "a")

	require.Empty(t, buf.String(), "disabled trace must not write output")
	events := tr.Events()
	require.Len(t, events, 2)
	assert.Equal(t, LevelScope, events[0].Level)
	assert.Equal(t, "push scope 1", events[0].Message)
	assert.Equal(t, LevelDrop, events[1].Level)
}

func TestTraceWritesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrace(&buf, true)
	tr.Emit(LevelPanic, "boom")
	assert.Contains(t, buf.String(), "boom")
}

func TestTraceReset(t *testing.T) {
	tr := NewTrace(nil, false)
	tr.Emit(LevelCall, "f()")
	require.Len(t, tr.Events(), 1)
	tr.Reset()
	assert.Empty(t, tr.Events())
}

func TestErrorFormatting(t *testing.T) {
	err := Errorf(TupleIndexOOB, Span{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}, "index %d out of bounds for %d", 9, 3)
	assert.Equal(t, TupleIndexOOB, err.Code)
	assert.Contains(t, err.Error(), "TYPE003")
	got, ok := AsError(error(err))
	require.True(t, ok)
	assert.Same(t, err, got)
}
