package view

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/shopspring/decimal"
	"github.com/temidaradev/esset/v2"

	"bpilive/internal/currencies"
	"bpilive/internal/format"
	"bpilive/internal/store"
	"bpilive/internal/view/widget"
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.initWhiteImage()
	screen.Fill(g.style.Background)

	now := g.now()
	snap := g.ctrl.Store().Snapshot()
	loc := format.MustLocale(snap.Selection.Locale)

	g.drawPanel(screen, snap, loc, now)
	g.drawChart(screen, snap, loc)
}

func (g *Game) initWhiteImage() {
	if g.white == nil {
		g.white = ebiten.NewImage(3, 3)
		g.white.Fill(color.White)
	}
}

func (g *Game) drawText(dst *ebiten.Image, s string, x, y float64, clr color.RGBA) {
	esset.DrawText(dst, s, 0, x, y, g.face, clr)
}

func (g *Game) drawPanel(screen *ebiten.Image, snap store.Snapshot, loc format.Locale, now time.Time) {
	sel := snap.Selection
	today := g.ctrl.Today()

	for _, r := range widget.Rows() {
		g.drawText(screen, r.Label(), g.layout.LabelX(), g.layout.RowY(r), g.style.Muted)
	}

	g.drawText(screen, g.currencyName(sel.Currency), g.layout.ValueX(), g.layout.RowY(widget.RowCurrency), g.style.Text)
	g.drawText(screen, fmt.Sprintf("%s (%s)", loc.Name, loc.Tag), g.layout.ValueX(), g.layout.RowY(widget.RowLocale), g.style.Text)
	g.drawText(screen, format.PickerDate(sel.Start, loc), g.layout.ValueX(), g.layout.RowY(widget.RowStart), g.style.Text)
	g.drawText(screen, format.PickerDate(sel.End, loc), g.layout.ValueX(), g.layout.RowY(widget.RowEnd), g.style.Text)

	for _, b := range g.layout.Buttons() {
		clr := g.style.Text
		if !widget.CanStep(sel, b.Row, b.Dir, today) {
			clr = g.style.Grid
		}
		vector.StrokeRect(screen, float32(b.Rect.Min.X), float32(b.Rect.Min.Y), float32(b.Rect.Dx()), float32(b.Rect.Dy()), float32(g.scale), clr, false)
		w, _ := text.Measure(b.Glyph(), g.face, -1)
		g.drawText(screen, b.Glyph(), float64(b.Rect.Min.X)+(float64(b.Rect.Dx())-w)/2, float64(b.Rect.Min.Y), clr)
	}

	g.drawPrice(screen, snap, loc, now)
}

func (g *Game) currencyName(code string) string {
	i := currencies.Index(g.currencies, code)
	if i < 0 {
		return code
	}
	return fmt.Sprintf("%s - %s", code, g.currencies[i].Country)
}

func (g *Game) drawPrice(screen *ebiten.Image, snap store.Snapshot, loc format.Locale, now time.Time) {
	x := g.layout.ValueX()
	y := g.layout.RowY(widget.RowPrice)

	var msg string
	clr := g.style.Text
	switch snap.Price.Display() {
	case store.ShowError:
		msg, clr = snap.Price.Err().Error(), g.style.Error
	case store.ShowLoading:
		msg, clr = "Loading...", g.style.Muted
	case store.ShowValue:
		price, _ := snap.Price.Value()
		rate, ok := price.RateFor(snap.Selection.Currency)
		if !ok {
			msg, clr = "Loading...", g.style.Muted
			break
		}
		s, err := format.Currency(rate.Rate, rate.Code, loc)
		if err != nil {
			msg, clr = err.Error(), g.style.Error
			break
		}
		msg = s
		switch snap.Trend() {
		case 1:
			clr = g.style.Up
		case -1:
			clr = g.style.Down
		}
		clr = fade(clr, g.flash.PriceAlpha(now))
	}
	g.drawText(screen, msg, x, y, clr)

	w, _ := text.Measure(msg, g.face, -1)
	x += w + 8*g.scale
	if a := g.flash.UpdatedAlpha(now); a > 0 {
		g.drawText(screen, "updated!", x, y, fade(g.style.Text, a))
		uw, _ := text.Measure("updated!", g.face, -1)
		x += uw + 8*g.scale
	}
	if left := g.ctrl.Timer().Remaining(now); g.ctrl.Timer().Running() {
		secs := int(left.Round(time.Second) / time.Second)
		g.drawText(screen, fmt.Sprintf("next update in %ds", secs), x, y, g.style.Grid)
	}
}

func (g *Game) drawChart(screen *ebiten.Image, snap store.Snapshot, loc format.Locale) {
	b := screen.Bounds()
	rect := g.layout.Chart(b.Dx(), b.Dy())
	if rect.Empty() {
		return
	}
	vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), g.style.Panel, false)

	switch snap.History.Display() {
	case store.ShowError:
		g.drawCentered(screen, rect, snap.History.Err().Error(), g.style.Error)
		return
	case store.ShowLoading:
		g.drawCentered(screen, rect, "Loading...", g.style.Muted)
		return
	}

	series, _ := g.chartSeries(snap, loc)
	title := fmt.Sprintf("%s (%s)", series.Title, snap.Selection.Currency)
	tw, th := text.Measure(title, g.face, -1)
	g.drawText(screen, title, float64(rect.Min.X)+(float64(rect.Dx())-tw)/2, float64(rect.Min.Y)-th-5*g.scale, g.style.Muted)

	if len(series.Points) == 0 {
		g.drawCentered(screen, rect, "No history data for this range.", g.style.Muted)
		return
	}

	scale := widget.NewScale(series.Min, series.Max)
	g.drawYAxis(screen, rect, scale, snap.Selection.Currency, loc)
	g.drawXAxis(screen, rect, series)

	values := make([]decimal.Decimal, len(series.Points))
	for i, p := range series.Points {
		values[i] = p.Value
	}
	pts := widget.Project(values, scale, rect)
	g.strokeLine(screen, pts)

	last := pts[len(pts)-1]
	vector.DrawFilledCircle(screen, last.X, last.Y, 3*float32(g.scale), g.style.Marker, true)

	g.drawTooltip(screen, rect, series, pts, snap.Selection.Currency, loc)
}

func (g *Game) drawCentered(screen *ebiten.Image, rect image.Rectangle, msg string, clr color.RGBA) {
	w, h := text.Measure(msg, g.face, -1)
	x := float64(rect.Min.X) + (float64(rect.Dx())-w)/2
	y := float64(rect.Min.Y) + (float64(rect.Dy())-h)/2
	g.drawText(screen, msg, x, y, clr)
}

func (g *Game) drawYAxis(screen *ebiten.Image, rect image.Rectangle, scale widget.Scale, code string, loc format.Locale) {
	for _, v := range scale.Ticks(g.style.YTicks) {
		y := scale.Y(v, rect)
		vector.StrokeLine(screen, float32(rect.Min.X), y, float32(rect.Max.X), y, float32(g.scale), g.style.Grid, false)

		label, err := format.Currency(v, code, loc)
		if err != nil {
			continue
		}
		w, h := text.Measure(label, g.face, -1)
		g.drawText(screen, label, float64(rect.Min.X)-w-4*g.scale, float64(y)-h/2, g.style.Muted)
	}
}

func (g *Game) drawXAxis(screen *ebiten.Image, rect image.Rectangle, series format.Series) {
	n := len(series.Points)
	slots := int(float64(rect.Dx()) / (g.style.XLabelWidth * g.scale))
	for _, i := range widget.LabelIndexes(n, slots) {
		label := series.Points[i].Label
		w, _ := text.Measure(label, g.face, -1)
		x := float64(widget.X(i, n, rect)) - w/2
		if x < float64(rect.Min.X) {
			x = float64(rect.Min.X)
		}
		if x+w > float64(rect.Max.X) {
			x = float64(rect.Max.X) - w
		}
		g.drawText(screen, label, x, float64(rect.Max.Y)+4*g.scale, g.style.Muted)
	}
}

func (g *Game) strokeLine(screen *ebiten.Image, pts []widget.Vec) {
	if len(pts) < 2 {
		return
	}
	path := &vector.Path{}
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		path.LineTo(p.X, p.Y)
	}

	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    g.style.LineWidth * float32(g.scale),
		LineJoin: vector.LineJoinRound,
	})
	c := g.style.Line
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(c.A) / 0xff
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, g.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image), op)
}

func (g *Game) drawTooltip(screen *ebiten.Image, rect image.Rectangle, series format.Series, pts []widget.Vec, code string, loc format.Locale) {
	mx, my := ebiten.CursorPosition()
	if !image.Pt(mx, my).In(rect) {
		return
	}
	i := widget.Nearest(mx, len(pts), rect)
	if i < 0 {
		return
	}
	p := pts[i]
	vector.StrokeLine(screen, p.X, float32(rect.Min.Y), p.X, float32(rect.Max.Y), float32(g.scale), g.style.Grid, false)
	vector.DrawFilledCircle(screen, p.X, p.Y, 4*float32(g.scale), g.style.Line, true)

	value, err := format.Currency(series.Points[i].Value, code, loc)
	if err != nil {
		return
	}
	tip := fmt.Sprintf("%s: %s", series.Points[i].Label, value)
	w, h := text.Measure(tip, g.face, -1)
	pad := 4 * g.scale
	x := float64(p.X) + 8*g.scale
	if x+w+2*pad > float64(rect.Max.X) {
		x = float64(p.X) - w - 2*pad - 8*g.scale
	}
	y := float64(rect.Min.Y) + pad
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w+2*pad), float32(h+2*pad), g.style.Background, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w+2*pad), float32(h+2*pad), float32(g.scale), g.style.Grid, false)
	g.drawText(screen, tip, x+pad, y+pad, g.style.Text)
}
