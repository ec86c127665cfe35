// Package report writes the plain-text output of the headless commands.
package report

import (
	"fmt"
	"io"

	tw "github.com/olekukonko/tablewriter"

	"bpilive/internal/bpi"
	"bpilive/internal/currencies"
	"bpilive/internal/format"
	"bpilive/internal/store"
)

// Price prints the current rate and a summary of the historical range.
func Price(w io.Writer, sel store.Selection, price *bpi.CurrentPrice, series *bpi.HistoricalSeries) error {
	loc := format.MustLocale(sel.Locale)
	rate, ok := price.RateFor(sel.Currency)
	if !ok {
		return fmt.Errorf("no %s rate in response", sel.Currency)
	}
	cur, err := format.Currency(rate.Rate, rate.Code, loc)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Bitcoin price (%s): %s\n", sel.Currency, cur)
	if !price.Updated.IsZero() {
		fmt.Fprintf(w, "Updated: %s\n", price.Updated.UTC().Format("2006-01-02 15:04:05 MST"))
	}

	span := fmt.Sprintf("%s .. %s", format.PickerDate(sel.Start, loc), format.PickerDate(sel.End, loc))
	s := format.BuildSeries(series, loc)
	if len(s.Points) == 0 {
		fmt.Fprintf(w, "%s: no closes\n", span)
		return nil
	}
	low, err := format.Currency(s.Min, sel.Currency, loc)
	if err != nil {
		return err
	}
	high, err := format.Currency(s.Max, sel.Currency, loc)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d closes, low %s, high %s\n", span, len(s.Points), low, high)
	return nil
}

// History prints one table row per close, in response order.
func History(w io.Writer, sel store.Selection, series *bpi.HistoricalSeries) error {
	loc := format.MustLocale(sel.Locale)
	s := format.BuildSeries(series, loc)
	fmt.Fprintf(w, "%s (%s)\n", s.Title, sel.Currency)

	table := tw.NewWriter(w)
	table.SetHeader([]string{"Date", "Close"})
	table.SetBorder(false)
	for _, p := range s.Points {
		v, err := format.Currency(p.Value, sel.Currency, loc)
		if err != nil {
			return err
		}
		table.Append([]string{p.Label, v})
	}
	table.Render()
	return nil
}

func Currencies(w io.Writer, list []currencies.Currency) {
	table := tw.NewWriter(w)
	table.SetHeader([]string{"Code", "Country"})
	table.SetBorder(false)
	for _, c := range list {
		table.Append([]string{c.Code, c.Country})
	}
	table.Render()
}
