package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Exchanger swaps a one-time reservation id for a raw session token.
type Exchanger interface {
	Exchange(ctx context.Context, reservationID string) (string, error)
}

// Storage is an opaque async key/value store scoped to the browser
// session. Get returns nil when the key is absent.
type Storage interface {
	Get(ctx context.Context, key string) (*string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Navigator performs the two navigation effects of the hosting page.
type Navigator interface {
	// Redirect navigates to an absolute URL; no return value is observed.
	Redirect(url string)
	// ReplaceURL swaps the current URL without navigating.
	ReplaceURL(url string)
}

// Collaborators holds the external effect handlers the runtime drives.
type Collaborators struct {
	Exchanger Exchanger
	Storage   Storage
	Navigator Navigator
}

// Runtime wires the machine to its collaborators. Events are processed
// strictly one at a time; effect completions come back through the same
// queue, so no two transitions ever interleave. Issued effects are never
// cancelled - a later event only changes how the eventual result is
// interpreted.
type Runtime struct {
	machine       *Machine
	collaborators Collaborators
	events        chan Event
	logger        zerolog.Logger

	lock sync.RWMutex // guards machine between the run loop and View
	wg   sync.WaitGroup
}

// RuntimeOption defines a function type to modify the Runtime instance.
type RuntimeOption func(*Runtime)

// WithLogger sets the runtime logger.
func WithLogger(logger zerolog.Logger) RuntimeOption {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// NewRuntime initializes a new Runtime with required collaborators.
func NewRuntime(identityProviderURL string, collaborators Collaborators, options ...RuntimeOption) (*Runtime, error) {
	if collaborators.Exchanger == nil {
		return nil, errors.New("[NewRuntime] Exchanger is required")
	}
	if collaborators.Storage == nil {
		return nil, errors.New("[NewRuntime] Storage is required")
	}
	if collaborators.Navigator == nil {
		return nil, errors.New("[NewRuntime] Navigator is required")
	}

	runtime := &Runtime{
		machine:       NewMachine(identityProviderURL),
		collaborators: collaborators,
		events:        make(chan Event, 16),
		logger:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(runtime)
	}

	return runtime, nil
}

// Run processes events until ctx is cancelled, then waits for in-flight
// effects to finish. Start it before dispatching anything.
func (r *Runtime) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.wg.Wait()
			return
		case event := <-r.events:
			r.lock.Lock()
			effects := r.machine.Update(event)
			r.lock.Unlock()
			for _, effect := range effects {
				r.perform(ctx, effect)
			}
		}
	}
}

// Dispatch queues an event for the machine. Safe for concurrent use.
func (r *Runtime) Dispatch(event Event) {
	r.events <- event
}

// Startup feeds the environment flags into the machine.
func (r *Runtime) Startup(currentTime float64, appURL, appID string) {
	r.Dispatch(StartupEvent{CurrentTime: currentTime, AppURL: appURL, AppID: appID})
}

// Login requests a login; a no-op if the held token is already valid.
func (r *Runtime) Login() {
	r.Dispatch(LoginRequestedEvent{})
}

// Logout removes the persisted token and redirects to the identity
// provider's logout endpoint once the removal completes.
func (r *Runtime) Logout() {
	r.Dispatch(LogoutRequestedEvent{})
}

// View returns the current display state.
func (r *Runtime) View() View {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.machine.View()
}

// State returns a copy of the current session record.
func (r *Runtime) State() State {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.machine.State()
}

func (r *Runtime) perform(ctx context.Context, effect Effect) {
	switch ef := effect.(type) {
	case ExchangeEffect:
		requestID := uuid.New().String()
		r.logger.Debug().Str("request_id", requestID).Msg("exchanging reservation id for token")
		r.goAsync(func() {
			raw, err := r.collaborators.Exchanger.Exchange(ctx, ef.ReservationID)
			if err != nil {
				r.logger.Warn().Err(err).Str("request_id", requestID).Msg("token exchange failed")
			}
			r.Dispatch(ExchangeResultEvent{RawToken: raw, Err: err})
		})
	case ReadStorageEffect:
		r.goAsync(func() {
			value, err := r.collaborators.Storage.Get(ctx, ef.Key)
			r.Dispatch(StorageReadEvent{Value: value, Err: err})
		})
	case WriteStorageEffect:
		r.goAsync(func() {
			err := r.collaborators.Storage.Set(ctx, ef.Key, ef.Value)
			if err != nil {
				// Best-effort persistence: log and drop.
				r.logger.Warn().Err(err).Str("key", ef.Key).Msg("storage write failed")
			}
			r.Dispatch(StorageWriteDoneEvent{Err: err})
		})
	case RemoveStorageEffect:
		r.goAsync(func() {
			err := r.collaborators.Storage.Remove(ctx, ef.Key)
			if err != nil {
				r.logger.Warn().Err(err).Str("key", ef.Key).Msg("storage remove failed")
			}
			r.Dispatch(StorageRemoveDoneEvent{Logout: ef.Logout, Err: err})
		})
	case RedirectEffect:
		r.logger.Info().Str("url", ef.URL).Msg("redirecting")
		r.collaborators.Navigator.Redirect(ef.URL)
	case ReplaceURLEffect:
		r.collaborators.Navigator.ReplaceURL(ef.URL)
	}
}

func (r *Runtime) goAsync(fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn()
	}()
}
