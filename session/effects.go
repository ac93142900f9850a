package session

// Effect is an instruction to a collaborator, returned by Machine.Update
// in dispatch order. Effects carry inert data only; their completions
// come back to the machine as events, in whatever order they finish.
type Effect interface {
	isEffect()
}

// ExchangeEffect asks the network collaborator to swap a one-time
// reservation id for a raw session token.
type ExchangeEffect struct {
	ReservationID string
}

// ReadStorageEffect asks the storage collaborator for the value under Key.
type ReadStorageEffect struct {
	Key string
}

// WriteStorageEffect persists Value under Key, best-effort.
type WriteStorageEffect struct {
	Key   string
	Value string
}

// RemoveStorageEffect deletes Key. Logout tags removals issued by a
// logout request so their completion can trigger the redirect.
type RemoveStorageEffect struct {
	Key    string
	Logout bool
}

// RedirectEffect navigates the hosting page to an absolute URL. No
// return value is ever observed.
type RedirectEffect struct {
	URL string
}

// ReplaceURLEffect swaps the current browser URL without navigating,
// used to keep the consumed reservation id out of history.
type ReplaceURLEffect struct {
	URL string
}

func (ExchangeEffect) isEffect()      {}
func (ReadStorageEffect) isEffect()   {}
func (WriteStorageEffect) isEffect()  {}
func (RemoveStorageEffect) isEffect() {}
func (RedirectEffect) isEffect()      {}
func (ReplaceURLEffect) isEffect()    {}
