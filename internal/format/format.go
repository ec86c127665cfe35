// Package format turns prices and dates into locale-aware display strings
// and chart-ready series.
package format

import (
	"fmt"

	"github.com/goodsign/monday"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"bpilive/internal/bpi"
	"bpilive/internal/date"
)

// Currency renders rate in code using loc's symbol placement and separators,
// rounded to the currency's minor unit.
func Currency(rate decimal.Decimal, code string, loc Locale) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("unknown currency %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)

	p := message.NewPrinter(loc.lang)
	sign := ""
	if rate.IsNegative() {
		sign = "-"
		rate = rate.Neg()
	}
	rounded := rate.Round(int32(scale)).InexactFloat64()
	amount := p.Sprint(number.Decimal(rounded, number.Scale(scale)))
	sym := p.Sprint(currency.Symbol(unit))

	if loc.symbolAfter {
		return sign + amount + " " + sym, nil
	}
	return sign + sym + amount, nil
}

// RequestDate renders d as YYYY-MM-DD regardless of locale.
func RequestDate(d date.Date) string {
	return d.String()
}

// ChartLabel renders d as a medium-length date in loc ("Apr 10, 2021").
func ChartLabel(d date.Date, loc Locale) string {
	return monday.Format(d.Time(), loc.labelLayout, loc.calendar)
}

// PickerDate renders d the way the date pickers show it ("April 10, 2021").
func PickerDate(d date.Date, loc Locale) string {
	return monday.Format(d.Time(), loc.pickerLayout, loc.calendar)
}

// Point is one chart sample.
type Point struct {
	Label string
	Date  date.Date
	Value decimal.Decimal
}

// Series is a chart-ready historical series.
type Series struct {
	Title  string
	Points []Point
	Min    decimal.Decimal
	Max    decimal.Decimal
}

const seriesTitle = "Bitcoin price"

// BuildSeries keeps the order and length of the upstream response.
func BuildSeries(h *bpi.HistoricalSeries, loc Locale) Series {
	s := Series{Title: seriesTitle}
	if h.Len() == 0 {
		return s
	}
	s.Points = make([]Point, 0, len(h.Closes))
	s.Min = h.Closes[0].Price
	s.Max = h.Closes[0].Price
	for _, c := range h.Closes {
		s.Points = append(s.Points, Point{
			Label: ChartLabel(c.Date, loc),
			Date:  c.Date,
			Value: c.Price,
		})
		if c.Price.LessThan(s.Min) {
			s.Min = c.Price
		}
		if c.Price.GreaterThan(s.Max) {
			s.Max = c.Price
		}
	}
	return s
}
