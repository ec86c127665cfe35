package widget

import (
	"image"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var rect = image.Rect(0, 0, 100, 50)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProject(t *testing.T) {
	rq := require.New(t)
	s := NewScale(d("10"), d("20"))

	pts := Project([]decimal.Decimal{d("10"), d("15"), d("20")}, s, rect)
	rq.Equal([]Vec{{0, 50}, {50, 25}, {100, 0}}, pts)

	one := Project([]decimal.Decimal{d("7")}, NewScale(d("7"), d("7")), rect)
	rq.Equal([]Vec{{50, 25}}, one)
}

func TestTicks(t *testing.T) {
	ticks := NewScale(d("100"), d("200")).Ticks(5)
	require.Len(t, ticks, 5)
	require.Equal(t, "100", ticks[0].String())
	require.Equal(t, "125", ticks[1].String())
	require.Equal(t, "200", ticks[4].String())
}

func TestNearest(t *testing.T) {
	require.Equal(t, -1, Nearest(50, 0, rect))
	require.Equal(t, -1, Nearest(-1, 3, rect))
	require.Equal(t, -1, Nearest(100, 3, rect))
	require.Equal(t, 0, Nearest(10, 3, rect))
	require.Equal(t, 1, Nearest(40, 3, rect))
	require.Equal(t, 2, Nearest(99, 3, rect))
	require.Equal(t, 0, Nearest(99, 1, rect))
}

func TestLabelIndexes(t *testing.T) {
	require.Nil(t, LabelIndexes(0, 4))
	require.Equal(t, []int{0, 1, 2}, LabelIndexes(3, 4))
	require.Equal(t, []int{0, 10, 20, 30}, LabelIndexes(31, 4))
	require.Equal(t, []int{30}, LabelIndexes(31, 1))
}
