package widget

import (
	"image"

	"github.com/shopspring/decimal"
)

// Vec is a point in physical pixels.
type Vec struct {
	X, Y float32
}

// Scale maps values onto the vertical extent of a chart.
type Scale struct {
	Min, Max decimal.Decimal
}

// NewScale widens a flat range so a constant series draws mid-chart.
func NewScale(min, max decimal.Decimal) Scale {
	if max.LessThanOrEqual(min) {
		pad := decimal.NewFromInt(1)
		return Scale{Min: min.Sub(pad), Max: max.Add(pad)}
	}
	return Scale{Min: min, Max: max}
}

// Y projects v into rect; Min is the bottom edge and Max the top.
func (s Scale) Y(v decimal.Decimal, rect image.Rectangle) float32 {
	span := s.Max.Sub(s.Min).InexactFloat64()
	f := v.Sub(s.Min).InexactFloat64() / span
	return float32(float64(rect.Max.Y) - f*float64(rect.Dy()))
}

// Ticks returns n evenly spaced values from Min to Max inclusive.
func (s Scale) Ticks(n int) []decimal.Decimal {
	if n < 2 {
		return []decimal.Decimal{s.Min}
	}
	step := s.Max.Sub(s.Min).Div(decimal.NewFromInt(int64(n - 1)))
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = s.Min.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	out[n-1] = s.Max
	return out
}

// X is the horizontal position of point i of n. A single point is centered.
func X(i, n int, rect image.Rectangle) float32 {
	if n <= 1 {
		return float32(rect.Min.X) + float32(rect.Dx())/2
	}
	return float32(rect.Min.X) + float32(i)/float32(n-1)*float32(rect.Dx())
}

// Project maps values to chart coordinates, in order.
func Project(values []decimal.Decimal, s Scale, rect image.Rectangle) []Vec {
	out := make([]Vec, len(values))
	for i, v := range values {
		out[i] = Vec{X: X(i, len(values), rect), Y: s.Y(v, rect)}
	}
	return out
}

// Nearest returns the index of the point closest to screen x, or -1 when x
// is outside rect or there are no points.
func Nearest(x, n int, rect image.Rectangle) int {
	if n == 0 || x < rect.Min.X || x >= rect.Max.X {
		return -1
	}
	if n == 1 {
		return 0
	}
	f := float64(x-rect.Min.X) / float64(rect.Dx()) * float64(n-1)
	i := int(f + 0.5)
	if i >= n {
		i = n - 1
	}
	return i
}

// LabelIndexes picks up to max evenly spread indexes for x-axis labels,
// always including the first and last point.
func LabelIndexes(n, max int) []int {
	if n == 0 || max <= 0 {
		return nil
	}
	if n <= max {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if max == 1 {
		return []int{n - 1}
	}
	out := make([]int, max)
	for i := range out {
		out[i] = i * (n - 1) / (max - 1)
	}
	return out
}
