package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bpilive/internal/bpi"
	"bpilive/internal/currencies"
	"bpilive/internal/date"
	"bpilive/internal/store"
)

var sel = store.Selection{
	Currency: "USD",
	Locale:   "en-US",
	Start:    date.New(2021, time.April, 1),
	End:      date.New(2021, time.April, 3),
}

var series = &bpi.HistoricalSeries{
	Currency: "USD",
	Closes: []bpi.Close{
		{Date: date.New(2021, time.April, 1), Price: decimal.RequireFromString("58800.1")},
		{Date: date.New(2021, time.April, 2), Price: decimal.RequireFromString("57000.5")},
		{Date: date.New(2021, time.April, 3), Price: decimal.RequireFromString("59950.25")},
	},
}

func TestPrice(t *testing.T) {
	rq := require.New(t)
	price := &bpi.CurrentPrice{
		Updated:    time.Date(2021, time.April, 10, 12, 0, 0, 0, time.UTC),
		ByCurrency: map[string]bpi.Rate{"USD": {Code: "USD", Rate: decimal.RequireFromString("59123.45")}},
	}

	var buf bytes.Buffer
	rq.NoError(Price(&buf, sel, price, series))
	out := buf.String()
	rq.Contains(out, "Bitcoin price (USD): $59,123.45")
	rq.Contains(out, "Updated: 2021-04-10 12:00:00 UTC")
	rq.Contains(out, "April 1, 2021 .. April 3, 2021: 3 closes, low $57,000.50, high $59,950.25")

	buf.Reset()
	rq.NoError(Price(&buf, sel, price, nil))
	rq.Contains(buf.String(), "no closes")

	rq.Error(Price(&buf, store.Selection{Currency: "EUR", Locale: "en-US"}, price, series))
}

func TestHistoryKeepsOrder(t *testing.T) {
	rq := require.New(t)
	var buf bytes.Buffer
	rq.NoError(History(&buf, sel, series))
	out := buf.String()

	rq.True(strings.HasPrefix(out, "Bitcoin price (USD)\n"))
	first := strings.Index(out, "$58,800.10")
	second := strings.Index(out, "$57,000.50")
	third := strings.Index(out, "$59,950.25")
	rq.True(first > 0 && first < second && second < third, out)
}

func TestCurrencies(t *testing.T) {
	list, err := currencies.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	Currencies(&buf, list)
	require.Contains(t, buf.String(), "United States Dollar")
	require.Contains(t, buf.String(), "EUR")
}

func TestWatcherMarksTrend(t *testing.T) {
	rq := require.New(t)
	m := &bpi.MockFetcher{Price: decimal.NewFromInt(100)}
	var buf bytes.Buffer
	w := NewWatcher(&buf, m, sel, time.Second)
	w.now = func() time.Time { return time.Date(2021, time.April, 10, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	w.Poll(ctx)
	m.Price = decimal.NewFromInt(110)
	w.Poll(ctx)
	m.Price = decimal.NewFromInt(90)
	w.Poll(ctx)
	m.Err = errors.New("offline")
	w.Poll(ctx)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	rq.Len(lines, 4)
	rq.Equal("2021-04-10 12:00:00  $100.00 =", lines[0])
	rq.Equal("2021-04-10 12:00:00  $110.00 ▲", lines[1])
	rq.Equal("2021-04-10 12:00:00  $90.00 ▼", lines[2])
	rq.Equal("2021-04-10 12:00:00  error: offline", lines[3])
}

func TestWatcherSilentAfterCancel(t *testing.T) {
	var buf bytes.Buffer
	w := NewWatcher(&buf, &bpi.MockFetcher{Price: decimal.NewFromInt(1)}, sel, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.Poll(ctx)
	require.Empty(t, buf.String())
}
