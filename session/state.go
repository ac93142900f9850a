// Package session implements the widget's authentication state machine:
// the logic that decides, from a URL, a stored value and a network
// response, what the current authentication state is and when to
// re-authenticate.
package session

// StorageKey is the fixed key the raw token is persisted under for the
// lifetime of the browser session.
const StorageKey = "jwttoken"

// FetchStatus tags the lifecycle position of an asynchronously fetched
// value.
type FetchStatus int

const (
	NotRequested FetchStatus = iota
	Pending
	Succeeded
	Failed
)

func (s FetchStatus) String() string {
	switch s {
	case NotRequested:
		return "not-requested"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// FetchState is a tagged variant over the lifecycle of one fetched
// value. Exactly one variant holds at a time. Per request the
// transitions are monotonic (NotRequested -> Pending -> Succeeded or
// Failed); a new request restarts the cycle, always through Pending.
type FetchState[T any] struct {
	status FetchStatus
	value  T
	err    error
}

// NotRequestedState returns the initial variant.
func NotRequestedState[T any]() FetchState[T] {
	return FetchState[T]{status: NotRequested}
}

// PendingState marks a request in flight.
func PendingState[T any]() FetchState[T] {
	return FetchState[T]{status: Pending}
}

// SucceededState holds the fetched value.
func SucceededState[T any](value T) FetchState[T] {
	return FetchState[T]{status: Succeeded, value: value}
}

// FailedState holds the failure that ended the request.
func FailedState[T any](err error) FetchState[T] {
	return FetchState[T]{status: Failed, err: err}
}

// Status returns the variant tag.
func (f FetchState[T]) Status() FetchStatus {
	return f.status
}

// Value returns the fetched value; ok is true only for Succeeded.
func (f FetchState[T]) Value() (T, bool) {
	if f.status != Succeeded {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Err returns the failure for the Failed variant, nil otherwise.
func (f FetchState[T]) Err() error {
	if f.status != Failed {
		return nil
	}
	return f.err
}

// State is the single mutable session record. It is created once at
// startup from environment flags and mutated exclusively by
// Machine.Update; effects never touch it directly.
type State struct {
	CurrentTime float64
	AppURL      string
	AppID       string
	Token       FetchState[string]

	// PendingReservationID is set only transiently, between startup and
	// the exchange it triggers. It is consumed into at most one fetch.
	PendingReservationID *string
}

// View is the rendered authentication affordance: either a logout
// control showing the display name, or a login prompt.
type View struct {
	LoggedIn    bool
	DisplayName string
}
