package session

// Event is an external occurrence the machine reacts to. Effects issued
// by earlier transitions complete by delivering one of these back.
type Event interface {
	isEvent()
}

// StartupEvent carries the environment flags the widget boots from. The
// app URL may still contain the one-time reservation id the identity
// provider redirected back with.
type StartupEvent struct {
	CurrentTime float64
	AppURL      string
	AppID       string
}

// ExchangeResultEvent delivers the outcome of a token-exchange effect.
type ExchangeResultEvent struct {
	RawToken string
	Err      error
}

// StorageReadEvent delivers the outcome of a storage-read effect. Value
// is nil when the key was absent.
type StorageReadEvent struct {
	Value *string
	Err   error
}

// StorageWriteDoneEvent reports a completed storage write. Persistence
// is best-effort: the outcome is logged by the runtime but never changes
// state.
type StorageWriteDoneEvent struct {
	Err error
}

// StorageRemoveDoneEvent reports a completed storage removal. Logout
// marks removals issued by a logout request, whose completion triggers
// the redirect to the identity provider.
type StorageRemoveDoneEvent struct {
	Logout bool
	Err    error
}

// LoginRequestedEvent is an explicit login action from the user.
type LoginRequestedEvent struct{}

// LogoutRequestedEvent is an explicit logout action from the user.
type LogoutRequestedEvent struct{}

func (StartupEvent) isEvent()           {}
func (ExchangeResultEvent) isEvent()    {}
func (StorageReadEvent) isEvent()       {}
func (StorageWriteDoneEvent) isEvent()  {}
func (StorageRemoveDoneEvent) isEvent() {}
func (LoginRequestedEvent) isEvent()    {}
func (LogoutRequestedEvent) isEvent()   {}
