package bpi

import (
	"time"

	"github.com/shopspring/decimal"

	"bpilive/internal/date"
)

// Rate is one currency entry of a current-price response.
type Rate struct {
	Code        string
	Description string
	Rate        decimal.Decimal
}

// CurrentPrice holds the latest BPI, keyed by currency code. The upstream
// always includes USD next to the requested currency.
type CurrentPrice struct {
	Updated    time.Time
	ByCurrency map[string]Rate
}

// RateFor reports the rate for code, if the response carried it.
func (p *CurrentPrice) RateFor(code string) (Rate, bool) {
	if p == nil {
		return Rate{}, false
	}
	r, ok := p.ByCurrency[code]
	return r, ok
}

// Close is a single day's closing price.
type Close struct {
	Date  date.Date
	Price decimal.Decimal
}

// HistoricalSeries keeps closes in the order the upstream returned them.
type HistoricalSeries struct {
	Currency string
	Closes   []Close
}

func (s *HistoricalSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Closes)
}
