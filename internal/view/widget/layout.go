package widget

import "image"

// Row identifies one line of the control panel.
type Row int

const (
	RowCurrency Row = iota
	RowLocale
	RowStart
	RowEnd
	RowPrice
)

var rowLabels = [...]string{
	RowCurrency: "Currency:",
	RowLocale:   "Locale:",
	RowStart:    "Start date:",
	RowEnd:      "End date:",
	RowPrice:    "Last price:",
}

func (r Row) Label() string { return rowLabels[r] }

// Rows lists the panel rows top to bottom.
func Rows() []Row {
	return []Row{RowCurrency, RowLocale, RowStart, RowEnd, RowPrice}
}

// Button is a "<" or ">" stepper next to a row value.
type Button struct {
	Row  Row
	Dir  int
	Rect image.Rectangle
}

func (b Button) Glyph() string {
	if b.Dir < 0 {
		return "<"
	}
	return ">"
}

// Layout places the panel in physical pixels.
type Layout struct {
	Scale      float64
	LineHeight float64
}

const (
	margin      = 10.0
	labelWidth  = 90.0
	buttonWidth = 18.0
	valueWidth  = 240.0
	chartGap    = 20.0
	chartInset  = 30.0
)

func (l Layout) px(v float64) float64 { return v * l.Scale }

// RowY is the top of row r.
func (l Layout) RowY(r Row) float64 {
	return l.px(margin) + float64(r)*l.LineHeight
}

func (l Layout) LabelX() float64 { return l.px(margin) }

// ValueX is where a row value starts, right of its "<" button.
func (l Layout) ValueX() float64 {
	return l.px(margin+labelWidth+buttonWidth) + l.px(4)
}

// Buttons returns the steppers of every row that has them.
func (l Layout) Buttons() []Button {
	var out []Button
	for _, r := range []Row{RowCurrency, RowLocale, RowStart, RowEnd} {
		y0 := int(l.RowY(r))
		y1 := int(l.RowY(r) + l.LineHeight - l.px(4))
		prevX := l.px(margin + labelWidth)
		nextX := l.ValueX() + l.px(valueWidth)
		out = append(out,
			Button{Row: r, Dir: -1, Rect: image.Rect(int(prevX), y0, int(prevX+l.px(buttonWidth)), y1)},
			Button{Row: r, Dir: 1, Rect: image.Rect(int(nextX), y0, int(nextX+l.px(buttonWidth)), y1)},
		)
	}
	return out
}

// Hit returns the button under (x, y).
func (l Layout) Hit(x, y int) (Button, bool) {
	p := image.Pt(x, y)
	for _, b := range l.Buttons() {
		if p.In(b.Rect) {
			return b, true
		}
	}
	return Button{}, false
}

// Chart is the chart area for a screen of the given size.
func (l Layout) Chart(width, height int) image.Rectangle {
	top := l.RowY(RowPrice) + l.LineHeight + l.px(chartGap)
	inset := l.px(chartInset)
	x0, y0 := int(inset*2), int(top)
	x1, y1 := width-int(inset), height-int(inset)
	if x1 <= x0 || y1 <= y0 {
		return image.Rectangle{}
	}
	return image.Rect(x0, y0, x1, y1)
}
