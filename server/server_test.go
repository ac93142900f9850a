package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-widget/internal/config"
	"github.com/jrsteele09/go-auth-widget/server"
	"github.com/jrsteele09/go-auth-widget/session"
	"github.com/jrsteele09/go-auth-widget/session/sessionfakes"
	"github.com/jrsteele09/go-auth-widget/token"
)

const (
	testAppID  = "app1"
	testIdpURL = "https://idp.example.com"
	testAppURL = "https://app.example.com/home"
	testNow    = float64(1700000000)
)

type serverFixture struct {
	srv       *httptest.Server
	runtime   *session.Runtime
	navigator *sessionfakes.FakeNavigator
	storage   *sessionfakes.FakeStorage
}

func setupServerFixture(t *testing.T, exchanger *sessionfakes.FakeExchanger) *serverFixture {
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

	srv := httptest.NewServer(server.New(config.New(), runtime))
	t.Cleanup(srv.Close)

	return &serverFixture{srv: srv, runtime: runtime, navigator: navigator, storage: store}
}

func mintToken(t *testing.T, expiresAt int64) string {
	t.Helper()
	raw, err := token.NewHMACSigner("server-test-secret").Sign(&token.Claims{
		ID:          "user-1",
		Login:       "john.doe",
		ExpiresAt:   expiresAt,
		Audience:    testAppID,
		DisplayName: "John Doe",
	})
	require.NoError(t, err)
	return raw
}

func getSessionView(t *testing.T, srv *httptest.Server) map[string]any {
	t.Helper()
	resp, err := http.Get(srv.URL + server.RouteSession)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	var view map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestServer_Session(t *testing.T) {
	raw := mintToken(t, int64(testNow)+3600)
	f := setupServerFixture(t, sessionfakes.NewFakeExchanger(raw, nil))

	f.runtime.Startup(testNow, testAppURL+"?reservationId=R1", testAppID)
	require.Eventually(t, func() bool { return f.runtime.View().LoggedIn }, 2*time.Second, 5*time.Millisecond)

	view := getSessionView(t, f.srv)
	require.Equal(t, true, view["loggedIn"])
	require.Equal(t, "John Doe", view["displayName"])
}

func TestServer_SessionLoggedOut(t *testing.T) {
	f := setupServerFixture(t, sessionfakes.NewFakeExchanger("", nil))

	f.runtime.Startup(testNow, testAppURL, testAppID)
	require.Eventually(t, func() bool {
		return f.runtime.State().Token.Status() == session.Failed
	}, 2*time.Second, 5*time.Millisecond)

	view := getSessionView(t, f.srv)
	require.Equal(t, false, view["loggedIn"])
	require.NotContains(t, view, "displayName")
}

func TestServer_Login(t *testing.T) {
	f := setupServerFixture(t, sessionfakes.NewFakeExchanger("", nil))

	f.runtime.Startup(testNow, testAppURL, testAppID)
	require.Eventually(t, func() bool {
		return f.runtime.State().Token.Status() == session.Failed
	}, 2*time.Second, 5*time.Millisecond)

	resp, err := http.Post(f.srv.URL+server.RouteSessionLogin, "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Eventually(t, func() bool { return len(f.navigator.Redirects()) == 1 }, 2*time.Second, 5*time.Millisecond)
	require.Contains(t, f.navigator.Redirects()[0], testIdpURL+"/login?")
}

func TestServer_Logout(t *testing.T) {
	raw := mintToken(t, int64(testNow)+3600)
	f := setupServerFixture(t, sessionfakes.NewFakeExchanger(raw, nil))

	f.runtime.Startup(testNow, testAppURL+"?reservationId=R1", testAppID)
	require.Eventually(t, func() bool { return f.runtime.View().LoggedIn }, 2*time.Second, 5*time.Millisecond)

	resp, err := http.Post(f.srv.URL+server.RouteSessionLogout, "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Eventually(t, func() bool { return len(f.navigator.Redirects()) == 1 }, 2*time.Second, 5*time.Millisecond)
	require.Contains(t, f.navigator.Redirects()[0], testIdpURL+"/logout?")
	require.Equal(t, []string{session.StorageKey}, f.storage.Removes())
}

func TestServer_Cors(t *testing.T) {
	f := setupServerFixture(t, sessionfakes.NewFakeExchanger("", nil))

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+server.RouteSession, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Default config allows the wildcard origin.
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_Health(t *testing.T) {
	f := setupServerFixture(t, sessionfakes.NewFakeExchanger("", nil))

	resp, err := http.Get(f.srv.URL + server.RouteHealth)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
