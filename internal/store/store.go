// Package store holds the dashboard state: the user's selection and the two
// independently fetched data slices.
package store

import (
	"errors"
	"sync"
	"time"

	"bpilive/internal/bpi"
	"bpilive/internal/date"
)

var ErrInvalidRange = errors.New("invalid date range: need start <= end <= today")

// Selection drives every fetch.
type Selection struct {
	Currency string
	Locale   string
	Start    date.Date
	End      date.Date
}

// DefaultSelection covers the month up to today.
func DefaultSelection(currency, locale string, today date.Date) Selection {
	return Selection{
		Currency: currency,
		Locale:   locale,
		Start:    today.AddMonths(-1),
		End:      today,
	}
}

func (s Selection) Validate(today date.Date) error {
	if s.Start.After(s.End) || s.End.After(today) {
		return ErrInvalidRange
	}
	return nil
}

// Token identifies an issued fetch. Only the latest token per slice may
// write its result.
type Token uint64

// Store is safe for concurrent use; fetch goroutines resolve into it while
// the render loop reads snapshots.
type Store struct {
	mu sync.Mutex

	sel     Selection
	price   Slice[*bpi.CurrentPrice]
	history Slice[*bpi.HistoricalSeries]

	prevPrice     *bpi.CurrentPrice
	priceUpdated  time.Time
	priceIssued   Token
	historyIssued Token
	revision      uint64
	disposed      bool

	now func() time.Time
}

func New(sel Selection) *Store {
	return &Store{sel: sel, now: time.Now}
}

func (s *Store) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

func (s *Store) SetCurrency(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Currency = code
	s.revision++
}

func (s *Store) SetLocale(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Locale = tag
	s.revision++
}

// SetStart moves the start date, rejecting ranges that break start <= end <= today.
func (s *Store) SetStart(d, today date.Date) error {
	return s.setRange(func(sel *Selection) { sel.Start = d }, today)
}

// SetEnd moves the end date, rejecting ranges that break start <= end <= today.
func (s *Store) SetEnd(d, today date.Date) error {
	return s.setRange(func(sel *Selection) { sel.End = d }, today)
}

func (s *Store) setRange(apply func(*Selection), today date.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.sel
	apply(&next)
	if err := next.Validate(today); err != nil {
		return err
	}
	s.sel = next
	s.revision++
	return nil
}

// BeginPrice issues a new current-price token and returns the selection the
// fetch must use. The current value stays visible until the fetch resolves.
func (s *Store) BeginPrice() (Token, Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceIssued++
	return s.priceIssued, s.sel
}

func (s *Store) BeginHistory() (Token, Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyIssued++
	return s.historyIssued, s.sel
}

// ResolvePrice applies a finished current-price fetch. It reports false when
// the result was dropped because a newer fetch was issued or the store was
// disposed.
func (s *Store) ResolvePrice(tok Token, v *bpi.CurrentPrice, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || tok != s.priceIssued {
		return false
	}
	if err != nil {
		s.price = s.price.fail(err)
	} else {
		if cur, ok := s.price.Value(); ok {
			s.prevPrice = cur
		}
		s.price = s.price.succeed(v)
		s.priceUpdated = s.now()
	}
	s.revision++
	return true
}

func (s *Store) ResolveHistory(tok Token, v *bpi.HistoricalSeries, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || tok != s.historyIssued {
		return false
	}
	if err != nil {
		s.history = s.history.fail(err)
	} else {
		s.history = s.history.succeed(v)
	}
	s.revision++
	return true
}

// Dispose makes every later Resolve a no-op.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
}

// Snapshot is a consistent copy of the store for one frame.
type Snapshot struct {
	Selection    Selection
	Price        Slice[*bpi.CurrentPrice]
	History      Slice[*bpi.HistoricalSeries]
	PriceUpdated time.Time
	// Revision changes whenever anything in the snapshot changed.
	Revision uint64

	prevPrice *bpi.CurrentPrice
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Selection:    s.sel,
		Price:        s.price,
		History:      s.history,
		PriceUpdated: s.priceUpdated,
		Revision:     s.revision,
		prevPrice:    s.prevPrice,
	}
}

// Trend compares the current rate in the selected currency with the one
// before it: 1 up, -1 down, 0 unchanged or unknown.
func (s Snapshot) Trend() int {
	cur, ok := s.Price.Value()
	if !ok || s.prevPrice == nil {
		return 0
	}
	last, ok := cur.RateFor(s.Selection.Currency)
	if !ok {
		return 0
	}
	prev, ok := s.prevPrice.RateFor(s.Selection.Currency)
	if !ok {
		return 0
	}
	return last.Rate.Cmp(prev.Rate)
}
