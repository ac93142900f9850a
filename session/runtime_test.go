package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-widget/session"
	"github.com/jrsteele09/go-auth-widget/session/sessionfakes"
)

// runtimeFixture holds a running runtime plus its fake collaborators
type runtimeFixture struct {
	runtime   *session.Runtime
	exchanger *sessionfakes.FakeExchanger
	storage   *sessionfakes.FakeStorage
	navigator *sessionfakes.FakeNavigator
}

func setupRuntimeFixture(t *testing.T, exchanger *sessionfakes.FakeExchanger) *runtimeFixture {
	t.Helper()

	store := sessionfakes.NewFakeStorage()
	navigator := sessionfakes.NewFakeNavigator()

	runtime, err := session.NewRuntime(testIdpURL, session.Collaborators{
		Exchanger: exchanger,
		Storage:   store,
		Navigator: navigator,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go runtime.Run(ctx)

	return &runtimeFixture{
		runtime:   runtime,
		exchanger: exchanger,
		storage:   store,
		navigator: navigator,
	}
}

func eventually(t *testing.T, condition func() bool) {
	t.Helper()
	require.Eventually(t, condition, 2*time.Second, 5*time.Millisecond)
}

func TestRuntime_RequiresCollaborators(t *testing.T) {
	exchanger := sessionfakes.NewFakeExchanger("", nil)
	store := sessionfakes.NewFakeStorage()
	navigator := sessionfakes.NewFakeNavigator()

	t.Run("missing exchanger", func(t *testing.T) {
		_, err := session.NewRuntime(testIdpURL, session.Collaborators{Storage: store, Navigator: navigator})
		require.Error(t, err)
	})

	t.Run("missing storage", func(t *testing.T) {
		_, err := session.NewRuntime(testIdpURL, session.Collaborators{Exchanger: exchanger, Navigator: navigator})
		require.Error(t, err)
	})

	t.Run("missing navigator", func(t *testing.T) {
		_, err := session.NewRuntime(testIdpURL, session.Collaborators{Exchanger: exchanger, Storage: store})
		require.Error(t, err)
	})
}

func TestRuntime_StartupWithReservationID(t *testing.T) {
	raw := mintToken(t, testAppID, int64(testNow)+3600)
	f := setupRuntimeFixture(t, sessionfakes.NewFakeExchanger(raw, nil))

	f.runtime.Startup(testNow, testAppURL+"?reservationId=R1", testAppID)

	eventually(t, func() bool { return f.runtime.View().LoggedIn })
	require.Equal(t, testDisplayName, f.runtime.View().DisplayName)
	require.Equal(t, []string{"R1"}, f.exchanger.Calls())

	// The raw token is persisted exactly once, and the reservation id is
	// gone from the visible URL.
	eventually(t, func() bool { return len(f.storage.Sets()) == 1 })
	require.Equal(t, []string{raw}, f.storage.Sets())
	require.Equal(t, []string{testAppURL}, f.navigator.Replaced())
	require.Empty(t, f.navigator.Redirects())
}

func TestRuntime_StartupWithStoredExpiredToken(t *testing.T) {
	f := setupRuntimeFixture(t, sessionfakes.NewFakeExchanger("", nil))
	f.storage.Seed(session.StorageKey, mintToken(t, testAppID, int64(testNow)-1))

	f.runtime.Startup(testNow, testAppURL, testAppID)

	eventually(t, func() bool { return len(f.storage.Removes()) == 1 })
	require.False(t, f.runtime.View().LoggedIn)
	require.Empty(t, f.exchanger.Calls())
}

func TestRuntime_StartupWithStoredValidToken(t *testing.T) {
	f := setupRuntimeFixture(t, sessionfakes.NewFakeExchanger("", nil))
	f.storage.Seed(session.StorageKey, mintToken(t, testAppID, int64(testNow)+3600))

	f.runtime.Startup(testNow, testAppURL, testAppID)

	eventually(t, func() bool { return f.runtime.View().LoggedIn })
	require.Empty(t, f.storage.Removes())
	require.Empty(t, f.exchanger.Calls())
}

func TestRuntime_LoginRedirectsWhenLoggedOut(t *testing.T) {
	f := setupRuntimeFixture(t, sessionfakes.NewFakeExchanger("", nil))

	f.runtime.Startup(testNow, testAppURL, testAppID)
	eventually(t, func() bool { return f.runtime.State().Token.Status() == session.Failed })

	f.runtime.Login()

	eventually(t, func() bool { return len(f.navigator.Redirects()) == 1 })
	require.Equal(t,
		testIdpURL+"/login?backUrl="+testAppURLEncoded+"&clientId="+testAppID,
		f.navigator.Redirects()[0])
}

func TestRuntime_LogoutRemovesThenRedirects(t *testing.T) {
	raw := mintToken(t, testAppID, int64(testNow)+3600)
	f := setupRuntimeFixture(t, sessionfakes.NewFakeExchanger(raw, nil))

	f.runtime.Startup(testNow, testAppURL+"?reservationId=R1", testAppID)
	eventually(t, func() bool { return f.runtime.View().LoggedIn })

	f.runtime.Logout()

	eventually(t, func() bool { return len(f.navigator.Redirects()) == 1 })
	// The redirect is only dispatched once the removal completed.
	require.Equal(t, []string{session.StorageKey}, f.storage.Removes())
	require.Equal(t,
		testIdpURL+"/logout?backUrl="+testAppURLEncoded+"&clientId="+testAppID,
		f.navigator.Redirects()[0])
}
