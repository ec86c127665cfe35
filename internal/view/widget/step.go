package widget

import (
	"bpilive/internal/date"
	"bpilive/internal/store"
)

// CanStep reports whether a stepper may move. Date steppers stop where the
// range would break start <= end <= today; list rows always wrap.
func CanStep(sel store.Selection, r Row, dir int, today date.Date) bool {
	switch r {
	case RowStart:
		next := sel.Start.AddDays(dir)
		return !next.After(sel.End)
	case RowEnd:
		next := sel.End.AddDays(dir)
		return !next.Before(sel.Start) && !next.After(today)
	case RowPrice:
		return false
	}
	return true
}

// Cycle moves i by dir within n entries, wrapping at both ends. An unknown
// position (-1) steps onto the first or last entry.
func Cycle(i, dir, n int) int {
	if n == 0 {
		return -1
	}
	if i < 0 {
		if dir < 0 {
			return n - 1
		}
		return 0
	}
	return ((i+dir)%n + n) % n
}
