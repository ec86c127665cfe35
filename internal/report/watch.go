package report

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"bpilive/internal/bpi"
	"bpilive/internal/format"
	"bpilive/internal/store"
)

// Watcher prints one line per poll, marked with the direction the price
// moved since the previous successful poll.
type Watcher struct {
	out     io.Writer
	fetcher bpi.Fetcher
	store   *store.Store
	timeout time.Duration
	now     func() time.Time
}

func NewWatcher(out io.Writer, f bpi.Fetcher, sel store.Selection, timeout time.Duration) *Watcher {
	return &Watcher{out: out, fetcher: f, store: store.New(sel), timeout: timeout, now: time.Now}
}

// Poll fetches the current price once. Nothing is printed once ctx is done.
func (w *Watcher) Poll(ctx context.Context) {
	tok, sel := w.store.BeginPrice()
	fctx, cancel := context.WithTimeout(ctx, w.timeout)
	price, err := w.fetcher.FetchCurrentPrice(fctx, sel.Currency)
	cancel()
	if ctx.Err() != nil {
		return
	}
	if !w.store.ResolvePrice(tok, price, err) {
		return
	}

	stamp := w.now().Format("2006-01-02 15:04:05")
	snap := w.store.Snapshot()
	if err := snap.Price.Err(); err != nil {
		log.Printf("[WARN] could not fetch current price [%s]: %v", sel.Currency, err)
		fmt.Fprintf(w.out, "%s  error: %v\n", stamp, err)
		return
	}
	v, _ := snap.Price.Value()
	rate, ok := v.RateFor(sel.Currency)
	if !ok {
		fmt.Fprintf(w.out, "%s  error: no %s rate in response\n", stamp, sel.Currency)
		return
	}
	s, err := format.Currency(rate.Rate, sel.Currency, format.MustLocale(sel.Locale))
	if err != nil {
		fmt.Fprintf(w.out, "%s  error: %v\n", stamp, err)
		return
	}
	fmt.Fprintf(w.out, "%s  %s %s\n", stamp, s, trendMark(snap.Trend()))
}

func trendMark(trend int) string {
	switch trend {
	case 1:
		return "▲"
	case -1:
		return "▼"
	}
	return "="
}
