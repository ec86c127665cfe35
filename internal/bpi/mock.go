package bpi

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"bpilive/internal/date"
)

// MockFetcher returns controllable, deterministic data for offline use and tests.
type MockFetcher struct {
	Price decimal.Decimal
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCurrentPrice(_ context.Context, currency string) (*CurrentPrice, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	rates := map[string]Rate{
		currency: {Code: currency, Description: currency, Rate: m.Price},
	}
	if currency != "USD" {
		rates["USD"] = Rate{Code: "USD", Description: "United States Dollar", Rate: m.Price}
	}
	return &CurrentPrice{ByCurrency: rates}, nil
}

func (m *MockFetcher) FetchHistoricalSeries(_ context.Context, currency string, start, end date.Date) (*HistoricalSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	series := &HistoricalSeries{Currency: currency}
	base := m.Price.InexactFloat64()
	i := 0
	for d := start; !d.After(end); d = d.AddDays(1) {
		wave := 1 + 0.03*math.Sin(float64(i)/3)
		series.Closes = append(series.Closes, Close{
			Date:  d,
			Price: decimal.NewFromFloat(base * wave).Round(4),
		})
		i++
	}
	return series, nil
}
