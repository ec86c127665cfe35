package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bpilive/internal/date"
	"bpilive/internal/store"
)

func TestCanStep(t *testing.T) {
	today := date.New(2021, time.April, 10)
	sel := store.Selection{Start: date.New(2021, time.April, 9), End: today}

	require.True(t, CanStep(sel, RowStart, -1, today))
	require.True(t, CanStep(sel, RowStart, 1, today))
	require.True(t, CanStep(sel, RowEnd, -1, today))
	require.False(t, CanStep(sel, RowEnd, 1, today))
	require.True(t, CanStep(sel, RowCurrency, 1, today))
	require.False(t, CanStep(sel, RowPrice, 1, today))

	sel.Start = today
	require.False(t, CanStep(sel, RowStart, 1, today))
	require.False(t, CanStep(sel, RowEnd, -1, today))
}

func TestCycle(t *testing.T) {
	require.Equal(t, 1, Cycle(0, 1, 3))
	require.Equal(t, 0, Cycle(2, 1, 3))
	require.Equal(t, 2, Cycle(0, -1, 3))
	require.Equal(t, 0, Cycle(-1, 1, 3))
	require.Equal(t, 2, Cycle(-1, -1, 3))
	require.Equal(t, -1, Cycle(0, 1, 0))
}
