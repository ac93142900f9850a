package session

import (
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-auth-widget/appurl"
	widgeterrors "github.com/jrsteele09/go-auth-widget/internal/errors"
	"github.com/jrsteele09/go-auth-widget/internal/utils"
	"github.com/jrsteele09/go-auth-widget/token"
)

// Machine is the session state machine. Update processes one event at a
// time to completion and returns the effects to perform; it never blocks
// and never performs I/O itself. Whether the held token is usable is
// re-derived from the raw string on every decision - decode plus expiry
// and audience - so the display can never disagree with the claims.
type Machine struct {
	state     State
	validator *token.Validator
	idpURL    string
}

// NewMachine creates a machine that redirects to the login and logout
// endpoints under identityProviderURL.
func NewMachine(identityProviderURL string) *Machine {
	return &Machine{
		state:     State{Token: NotRequestedState[string]()},
		validator: token.NewValidator(),
		idpURL:    identityProviderURL,
	}
}

// State returns a copy of the current session record.
func (m *Machine) State() State {
	return m.state
}

// Update applies one event and returns the effects to dispatch, in
// order. Unknown events are ignored.
func (m *Machine) Update(event Event) []Effect {
	switch ev := event.(type) {
	case StartupEvent:
		return m.startup(ev)
	case ExchangeResultEvent:
		return m.exchangeResult(ev)
	case StorageReadEvent:
		return m.storageRead(ev)
	case StorageWriteDoneEvent:
		return nil // best-effort persistence, outcome ignored
	case StorageRemoveDoneEvent:
		return m.storageRemoveDone(ev)
	case LoginRequestedEvent:
		return m.loginRequested()
	case LogoutRequestedEvent:
		return m.logoutRequested()
	}
	return nil
}

// View renders the current display state from scratch.
func (m *Machine) View() View {
	raw, ok := m.state.Token.Value()
	if !ok {
		return View{}
	}
	claims, err := token.Decode(raw)
	if err != nil {
		return View{}
	}
	if !m.validator.IsValid(claims, m.state.CurrentTime, m.state.AppID) {
		return View{}
	}
	return View{LoggedIn: true, DisplayName: claims.DisplayName}
}

func (m *Machine) startup(ev StartupEvent) []Effect {
	m.state.CurrentTime = ev.CurrentTime
	m.state.AppID = ev.AppID
	m.state.AppURL = appurl.StripReservationID(ev.AppURL)
	m.state.Token = PendingState[string]()

	// Replace the browser URL first so the consumed reservation id never
	// reappears in history.
	effects := []Effect{ReplaceURLEffect{URL: m.state.AppURL}}
	if reservationID, ok := appurl.ExtractReservationID(ev.AppURL); ok {
		m.state.PendingReservationID = utils.Ptr(reservationID)
		return append(effects, ExchangeEffect{ReservationID: reservationID})
	}
	return append(effects, ReadStorageEffect{Key: StorageKey})
}

func (m *Machine) exchangeResult(ev ExchangeResultEvent) []Effect {
	// The reservation id is one-time-use; it is never re-issued,
	// whichever way the exchange went.
	m.state.PendingReservationID = nil

	if ev.Err != nil {
		m.state.Token = FailedState[string](ev.Err)
		return nil
	}

	m.state.Token = SucceededState(ev.RawToken)
	if m.tokenOK() {
		return []Effect{WriteStorageEffect{Key: StorageKey, Value: ev.RawToken}}
	}
	// An invalid-but-present token displays as logged out and is not
	// worth persisting.
	return nil
}

func (m *Machine) storageRead(ev StorageReadEvent) []Effect {
	// Race guard: an exchange completing while the read was in flight
	// already populated the token. The network result wins; the stored
	// value is ignored entirely.
	if m.state.Token.Status() == Succeeded {
		return nil
	}

	if ev.Err != nil {
		// A failing store is indistinguishable from an empty one.
		m.state.Token = FailedState[string](errors.Wrap(ev.Err, "[Machine.storageRead] read failed"))
		return nil
	}

	if ev.Value == nil {
		m.state.Token = FailedState[string](widgeterrors.ErrNoStoredToken)
		return []Effect{RemoveStorageEffect{Key: StorageKey}}
	}

	m.state.Token = SucceededState(utils.Value(ev.Value))
	if m.tokenOK() {
		return nil
	}
	m.state.Token = FailedState[string](widgeterrors.ErrStoredTokenRejected)
	return []Effect{RemoveStorageEffect{Key: StorageKey}}
}

func (m *Machine) storageRemoveDone(ev StorageRemoveDoneEvent) []Effect {
	if !ev.Logout {
		return nil
	}
	// Removal is best-effort; the identity provider's logout endpoint is
	// what actually ends the session, so redirect either way.
	return []Effect{RedirectEffect{URL: m.logoutURL()}}
}

func (m *Machine) loginRequested() []Effect {
	if m.tokenOK() {
		return nil
	}
	return []Effect{RedirectEffect{URL: m.loginURL()}}
}

func (m *Machine) logoutRequested() []Effect {
	// State stays untouched until the redirect navigates away.
	return []Effect{RemoveStorageEffect{Key: StorageKey, Logout: true}}
}

func (m *Machine) tokenOK() bool {
	raw, ok := m.state.Token.Value()
	if !ok {
		return false
	}
	return m.validator.IsRawTokenValid(raw, m.state.CurrentTime, m.state.AppID)
}

func (m *Machine) loginURL() string {
	return m.idpURL + "/login?" + appurl.BuildRedirectQuery(m.state.AppURL, m.state.AppID)
}

func (m *Machine) logoutURL() string {
	return m.idpURL + "/logout?" + appurl.BuildRedirectQuery(m.state.AppURL, m.state.AppID)
}
