package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bpilive/internal/bpi"
	"bpilive/internal/date"
	"bpilive/internal/store"
)

var (
	today = date.New(2021, time.April, 10)
	t0    = time.Date(2021, time.April, 10, 12, 0, 0, 0, time.UTC)
)

type historyCall struct {
	Currency   string
	Start, End string
}

// recordingFetcher records every call. Price requests for a currency listed
// in hold block until that channel is closed.
type recordingFetcher struct {
	mu      sync.Mutex
	prices  []string
	history []historyCall
	hold    map[string]chan struct{}
	err     error
}

func (f *recordingFetcher) Name() string { return "recording" }

func (f *recordingFetcher) FetchCurrentPrice(ctx context.Context, currency string) (*bpi.CurrentPrice, error) {
	f.mu.Lock()
	f.prices = append(f.prices, currency)
	gate := f.hold[currency]
	err := f.err
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &bpi.CurrentPrice{ByCurrency: map[string]bpi.Rate{
		currency: {Code: currency, Rate: decimal.NewFromInt(int64(len(currency) * 1000))},
	}}, nil
}

func (f *recordingFetcher) FetchHistoricalSeries(_ context.Context, currency string, start, end date.Date) (*bpi.HistoricalSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, historyCall{currency, start.String(), end.String()})
	if f.err != nil {
		return nil, f.err
	}
	return &bpi.HistoricalSeries{Currency: currency, Closes: []bpi.Close{{Date: end, Price: decimal.NewFromInt(1)}}}, nil
}

func (f *recordingFetcher) calls() ([]string, []historyCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prices...), append([]historyCall(nil), f.history...)
}

func (f *recordingFetcher) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices = nil
	f.history = nil
}

func newController(f bpi.Fetcher) *Controller {
	c := NewController(f, store.New(store.DefaultSelection("USD", "en-US", today)), 10*time.Second)
	c.Today = func() date.Date { return today }
	return c
}

func TestMountFetchesBothSlices(t *testing.T) {
	rq := require.New(t)
	f := &recordingFetcher{}
	c := newController(f)

	c.Mount(t0)
	c.Wait()
	defer c.Unmount()

	prices, history := f.calls()
	rq.Equal([]string{"USD"}, prices)
	rq.Equal([]historyCall{{"USD", "2021-03-10", "2021-04-10"}}, history)

	snap := c.Store().Snapshot()
	rq.Equal(store.Success, snap.Price.Status())
	rq.Equal(store.Success, snap.History.Status())
}

func TestSelectCurrencyFetchesOnceEach(t *testing.T) {
	rq := require.New(t)
	f := &recordingFetcher{}
	c := newController(f)
	c.Mount(t0)
	c.Wait()
	defer c.Unmount()
	f.reset()

	c.SelectCurrency("EUR")
	c.Wait()

	prices, history := f.calls()
	rq.Equal([]string{"EUR"}, prices)
	rq.Equal([]historyCall{{"EUR", "2021-03-10", "2021-04-10"}}, history)

	c.SelectCurrency("EUR")
	c.Wait()
	prices, _ = f.calls()
	rq.Len(prices, 1)
}

func TestSelectLocaleDoesNotFetch(t *testing.T) {
	f := &recordingFetcher{}
	c := newController(f)
	c.Mount(t0)
	c.Wait()
	defer c.Unmount()
	f.reset()

	c.SelectLocale("es")
	c.Wait()

	prices, history := f.calls()
	require.Empty(t, prices)
	require.Empty(t, history)
	require.Equal(t, "es", c.Store().Selection().Locale)
}

func TestDateChangeFetchesHistoryOnly(t *testing.T) {
	rq := require.New(t)
	f := &recordingFetcher{}
	c := newController(f)
	c.Mount(t0)
	c.Wait()
	defer c.Unmount()
	f.reset()

	rq.NoError(c.SetStart(date.New(2021, time.April, 1)))
	rq.ErrorIs(c.SetEnd(today.AddDays(1)), store.ErrInvalidRange)
	c.Wait()

	prices, history := f.calls()
	rq.Empty(prices)
	rq.Equal([]historyCall{{"USD", "2021-04-01", "2021-04-10"}}, history)
}

func TestTickRefreshesPrice(t *testing.T) {
	f := &recordingFetcher{}
	c := newController(f)
	c.Mount(t0)
	c.Wait()
	defer c.Unmount()
	f.reset()

	require.False(t, c.Tick(t0.Add(5*time.Second)))
	require.True(t, c.Tick(t0.Add(10*time.Second)))
	c.Wait()

	prices, history := f.calls()
	require.Equal(t, []string{"USD"}, prices)
	require.Empty(t, history)
}

func TestNoFetchAfterUnmount(t *testing.T) {
	f := &recordingFetcher{}
	c := newController(f)
	c.Mount(t0)
	c.Wait()
	c.Unmount()
	f.reset()

	for s := 10; s <= 120; s += 10 {
		require.False(t, c.Tick(t0.Add(time.Duration(s)*time.Second)))
	}
	c.Refresh()
	c.SelectCurrency("EUR")
	c.Wait()

	prices, history := f.calls()
	require.Empty(t, prices)
	require.Empty(t, history)
}

func TestUnmountAbortsInFlight(t *testing.T) {
	f := &recordingFetcher{hold: map[string]chan struct{}{"USD": make(chan struct{})}}
	c := newController(f)
	c.Mount(t0)
	rev := c.Store().Snapshot().Revision

	c.Unmount()

	snap := c.Store().Snapshot()
	require.Equal(t, store.Loading, snap.Price.Status())
	require.GreaterOrEqual(t, snap.Revision, rev)
}

func TestStaleResponseIsDropped(t *testing.T) {
	rq := require.New(t)
	gate := make(chan struct{})
	f := &recordingFetcher{hold: map[string]chan struct{}{"USD": gate}}
	c := newController(f)
	c.Mount(t0)
	defer c.Unmount()

	c.SelectCurrency("EUR")
	close(gate)
	c.Wait()

	v, ok := c.Store().Snapshot().Price.Value()
	rq.True(ok)
	_, hasUSD := v.RateFor("USD")
	rq.False(hasUSD)
	_, hasEUR := v.RateFor("EUR")
	rq.True(hasEUR)
}

func TestFailureIsStoredPerSlice(t *testing.T) {
	f := &recordingFetcher{}
	c := newController(f)
	c.Mount(t0)
	c.Wait()
	defer c.Unmount()

	f.mu.Lock()
	f.err = errors.New("offline")
	f.mu.Unlock()
	c.Refresh()
	c.Wait()

	snap := c.Store().Snapshot()
	require.Equal(t, store.Failure, snap.Price.Status())
	require.EqualError(t, snap.Price.Err(), "offline")
	require.Equal(t, store.Success, snap.History.Status())
}
