package widget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestButtonsHit(t *testing.T) {
	rq := require.New(t)
	l := Layout{Scale: 1, LineHeight: 23}

	buttons := l.Buttons()
	rq.Len(buttons, 8)
	for _, b := range buttons {
		rq.NotEqual(RowPrice, b.Row)
		got, ok := l.Hit(b.Rect.Min.X+1, b.Rect.Min.Y+1)
		rq.True(ok)
		rq.Equal(b.Row, got.Row)
		rq.Equal(b.Dir, got.Dir)
	}

	_, ok := l.Hit(0, 0)
	rq.False(ok)
}

func TestButtonsScale(t *testing.T) {
	small := Layout{Scale: 1, LineHeight: 23}.Buttons()
	large := Layout{Scale: 2, LineHeight: 46}.Buttons()
	require.Equal(t, small[0].Rect.Dx()*2, large[0].Rect.Dx())
	require.Equal(t, "<", small[0].Glyph())
	require.Equal(t, ">", small[1].Glyph())
}

func TestChartArea(t *testing.T) {
	l := Layout{Scale: 1, LineHeight: 23}
	r := l.Chart(640, 480)
	require.True(t, r.Min.Y > int(l.RowY(RowPrice)))
	require.Equal(t, 610, r.Max.X)
	require.Equal(t, 450, r.Max.Y)

	require.True(t, l.Chart(10, 10).Empty())
}

func TestRowLabels(t *testing.T) {
	require.Len(t, Rows(), 5)
	require.Equal(t, "Last price:", RowPrice.Label())
}
