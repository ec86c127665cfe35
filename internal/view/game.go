// Package view renders the dashboard in an ebiten window.
package view

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/temidaradev/esset/v2"
	"golang.org/x/image/font/gofont/goregular"

	"bpilive/internal/app"
	"bpilive/internal/currencies"
	"bpilive/internal/format"
	"bpilive/internal/store"
	"bpilive/internal/view/widget"
)

const (
	WindowTitle  = "BITCOIN PRICE LIVE"
	BaseFontSize = 12

	glyphsToPreload = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:/<>()-$€£¥ áéíóúñ!"
)

// LoadFace loads the UI font at size physical pixels and warms its glyph cache.
func LoadFace(size int) (text.Face, error) {
	face, err := esset.GetFont(goregular.TTF, size)
	if err != nil {
		return nil, fmt.Errorf("load font at size %d: %w", size, err)
	}
	tmp := ebiten.NewImage(1, 1)
	text.Draw(tmp, glyphsToPreload, face, &text.DrawOptions{})
	tmp.Deallocate()
	return face, nil
}

// Game is the ebiten game for one mounted controller.
type Game struct {
	ctrl       *app.Controller
	currencies []currencies.Currency
	face       text.Face
	scale      float64
	layout     widget.Layout
	style      ChartStyle
	white      *ebiten.Image
	flash      widget.Flash
	quit       atomic.Bool

	now func() time.Time

	seriesRev uint64
	seriesOK  bool
	series    format.Series
}

func NewGame(ctrl *app.Controller, list []currencies.Currency, face text.Face, scale float64, style ChartStyle) *Game {
	lineHeight := BaseFontSize*scale*1.5 + 5*scale
	return &Game{
		ctrl:       ctrl,
		currencies: list,
		face:       face,
		scale:      scale,
		layout:     widget.Layout{Scale: scale, LineHeight: lineHeight},
		style:      style,
		now:        time.Now,
	}
}

// Quit makes the next Update end the game loop. Safe from any goroutine.
func (g *Game) Quit() {
	g.quit.Store(true)
}

func (g *Game) Update() error {
	if g.quit.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := g.now()
	if g.ctrl.Tick(now) {
		g.flash.Trigger(now)
	}

	g.handleKeys(now)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if b, ok := g.layout.Hit(x, y); ok {
			g.step(b.Row, b.Dir)
		}
	}
	return nil
}

func (g *Game) handleKeys(now time.Time) {
	dir := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		dir = -1
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.step(widget.RowCurrency, dir)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.step(widget.RowLocale, dir)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.step(widget.RowStart, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.step(widget.RowStart, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.step(widget.RowEnd, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.step(widget.RowEnd, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.ctrl.Refresh()
		g.flash.Trigger(now)
	}
}

func (g *Game) step(row widget.Row, dir int) {
	sel := g.ctrl.Store().Selection()
	if !widget.CanStep(sel, row, dir, g.ctrl.Today()) {
		return
	}
	var err error
	switch row {
	case widget.RowCurrency:
		i := widget.Cycle(currencies.Index(g.currencies, sel.Currency), dir, len(g.currencies))
		if i >= 0 {
			g.ctrl.SelectCurrency(g.currencies[i].Code)
		}
	case widget.RowLocale:
		locs := format.Locales()
		i := widget.Cycle(format.LocaleIndex(sel.Locale), dir, len(locs))
		g.ctrl.SelectLocale(locs[i].Tag)
	case widget.RowStart:
		err = g.ctrl.SetStart(sel.Start.AddDays(dir))
	case widget.RowEnd:
		err = g.ctrl.SetEnd(sel.End.AddDays(dir))
	}
	if err != nil {
		log.Printf("[WARN] %v", err)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(float64(outsideWidth) * g.scale), int(float64(outsideHeight) * g.scale)
}

// chartSeries rebuilds the chart series only when the store changed.
func (g *Game) chartSeries(snap store.Snapshot, loc format.Locale) (format.Series, bool) {
	if g.seriesOK && g.seriesRev == snap.Revision {
		return g.series, true
	}
	h, ok := snap.History.Value()
	if !ok {
		return format.Series{}, false
	}
	g.series = format.BuildSeries(h, loc)
	g.seriesRev = snap.Revision
	g.seriesOK = true
	return g.series, true
}
