package view

import "image/color"

// ChartStyle configures the chart renderer.
type ChartStyle struct {
	Background color.RGBA
	Panel      color.RGBA
	Grid       color.RGBA
	Line       color.RGBA
	Marker     color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
	Up         color.RGBA
	Down       color.RGBA
	Error      color.RGBA

	LineWidth float32
	YTicks    int
	// XLabelWidth is the room reserved for one x-axis label, in logical pixels.
	XLabelWidth float64
}

func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		Background:  color.RGBA{25, 25, 25, 255},
		Panel:       color.RGBA{50, 50, 50, 255},
		Grid:        color.RGBA{70, 70, 70, 255},
		Line:        color.RGBA{0, 200, 255, 255},
		Marker:      color.RGBA{255, 255, 0, 255},
		Text:        color.RGBA{255, 255, 255, 255},
		Muted:       color.RGBA{150, 150, 150, 255},
		Up:          color.RGBA{0, 255, 0, 255},
		Down:        color.RGBA{255, 0, 0, 255},
		Error:       color.RGBA{255, 110, 110, 255},
		LineWidth:   2,
		YTicks:      5,
		XLabelWidth: 110,
	}
}

// fade scales a premultiplied color by alpha.
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
