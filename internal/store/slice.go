package store

// Status is the state of one independently fetched slice of data.
type Status int

const (
	Loading Status = iota
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Slice is the Loading | Success(value) | Failure(error) union for one piece
// of fetched data. A failure keeps the last good value around as stale data
// but only the error is meaningful while Status is Failure.
type Slice[T any] struct {
	status   Status
	value    T
	hasValue bool
	err      error
}

func (s Slice[T]) Status() Status { return s.status }

// Value returns the value of the last successful fetch, stale or not.
func (s Slice[T]) Value() (T, bool) { return s.value, s.hasValue }

// Err is non-nil only while Status is Failure.
func (s Slice[T]) Err() error {
	if s.status != Failure {
		return nil
	}
	return s.err
}

func (s Slice[T]) succeed(v T) Slice[T] {
	return Slice[T]{status: Success, value: v, hasValue: true}
}

func (s Slice[T]) fail(err error) Slice[T] {
	s.status = Failure
	s.err = err
	return s
}

// Display is what a view should render for this slice.
type Display int

const (
	ShowLoading Display = iota
	ShowValue
	ShowError
)

// Display picks error over value over loading placeholder. A refresh in
// flight never blanks a value that is already shown.
func (s Slice[T]) Display() Display {
	switch {
	case s.status == Failure:
		return ShowError
	case s.hasValue:
		return ShowValue
	default:
		return ShowLoading
	}
}
