// Package app connects view events to the store and the price fetcher.
package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"bpilive/internal/bpi"
	"bpilive/internal/date"
	"bpilive/internal/refresh"
	"bpilive/internal/store"
)

// Controller owns the fetch lifecycle of one mounted dashboard. Its methods
// are called from the render loop; fetches run on their own goroutines and
// resolve into the store.
type Controller struct {
	fetcher bpi.Fetcher
	store   *store.Store
	timer   *refresh.Timer

	// Today bounds the date range. Defaults to date.Today.
	Today   func() date.Date
	Verbose bool

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mounted bool
}

func NewController(f bpi.Fetcher, s *store.Store, interval time.Duration) *Controller {
	c := &Controller{
		fetcher: f,
		store:   s,
		Today:   date.Today,
	}
	c.timer = refresh.NewTimer(interval, c.fetchPrice)
	return c
}

func (c *Controller) Store() *store.Store { return c.store }

func (c *Controller) Timer() *refresh.Timer { return c.timer }

func (c *Controller) Mounted() bool { return c.mounted }

// Mount issues the initial fetch of both slices and starts the refresh timer.
func (c *Controller) Mount(now time.Time) {
	if c.mounted {
		return
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.mounted = true
	log.Printf("[INFO] mounted with %s fetcher, refreshing every %s", c.fetcher.Name(), c.timer.Interval())
	c.fetchPrice()
	c.fetchHistory()
	c.timer.Start(now)
}

// Unmount stops the timer, aborts in-flight requests and waits for their
// goroutines. Nothing is written to the store afterwards.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.timer.Stop()
	c.store.Dispose()
	c.cancel()
	c.wg.Wait()
	log.Println("[INFO] unmounted")
}

// Tick drives the refresh timer and reports whether it fired.
func (c *Controller) Tick(now time.Time) bool {
	return c.timer.Poll(now)
}

// SelectCurrency refetches both slices for the new currency.
func (c *Controller) SelectCurrency(code string) {
	if c.store.Selection().Currency == code {
		return
	}
	c.store.SetCurrency(code)
	c.fetchPrice()
	c.fetchHistory()
}

// SelectLocale only changes presentation.
func (c *Controller) SelectLocale(tag string) {
	c.store.SetLocale(tag)
}

func (c *Controller) SetStart(d date.Date) error {
	if err := c.store.SetStart(d, c.Today()); err != nil {
		return err
	}
	c.fetchHistory()
	return nil
}

func (c *Controller) SetEnd(d date.Date) error {
	if err := c.store.SetEnd(d, c.Today()); err != nil {
		return err
	}
	c.fetchHistory()
	return nil
}

// Refresh refetches the current price now, outside the timer cadence.
func (c *Controller) Refresh() {
	c.fetchPrice()
}

// Wait blocks until every issued fetch has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) fetchPrice() {
	if !c.mounted {
		return
	}
	tok, sel := c.store.BeginPrice()
	ctx := c.ctx
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		price, err := c.fetcher.FetchCurrentPrice(ctx, sel.Currency)
		c.logFailure("current price", sel.Currency, err)
		if !c.store.ResolvePrice(tok, price, err) && c.Verbose {
			log.Printf("[INFO] dropped current price [%s] #%d", sel.Currency, tok)
		}
	}()
}

func (c *Controller) fetchHistory() {
	if !c.mounted {
		return
	}
	tok, sel := c.store.BeginHistory()
	ctx := c.ctx
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		series, err := c.fetcher.FetchHistoricalSeries(ctx, sel.Currency, sel.Start, sel.End)
		c.logFailure("historical series", sel.Currency, err)
		if !c.store.ResolveHistory(tok, series, err) && c.Verbose {
			log.Printf("[INFO] dropped historical series [%s] #%d", sel.Currency, tok)
		}
	}()
}

func (c *Controller) logFailure(what, currency string, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	log.Printf("[WARN] could not fetch %s [%s]: %v", what, currency, err)
}
