package appurl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-widget/appurl"
)

func TestExtractReservationID(t *testing.T) {
	t.Run("present among other keys", func(t *testing.T) {
		id, ok := appurl.ExtractReservationID("https://a/b?reservationId=R1&x=1")
		require.True(t, ok)
		require.Equal(t, "R1", id)
	})

	t.Run("no query string", func(t *testing.T) {
		_, ok := appurl.ExtractReservationID("https://a/b")
		require.False(t, ok)
	})

	t.Run("query without the key", func(t *testing.T) {
		_, ok := appurl.ExtractReservationID("https://a/b?x=1&y=2")
		require.False(t, ok)
	})

	t.Run("first occurrence of a repeated key wins", func(t *testing.T) {
		id, ok := appurl.ExtractReservationID("https://a/b?reservationId=R1&reservationId=R2")
		require.True(t, ok)
		require.Equal(t, "R1", id)
	})

	t.Run("split happens at the first question mark only", func(t *testing.T) {
		id, ok := appurl.ExtractReservationID("https://a/b?reservationId=R1?x=2")
		require.True(t, ok)
		require.Equal(t, "R1?x=2", id)
	})

	t.Run("value is url-decoded", func(t *testing.T) {
		id, ok := appurl.ExtractReservationID("https://a/b?reservationId=R%20one")
		require.True(t, ok)
		require.Equal(t, "R one", id)
	})
}

func TestStripReservationID(t *testing.T) {
	t.Run("only parameter drops the query entirely", func(t *testing.T) {
		require.Equal(t, "https://a/b", appurl.StripReservationID("https://a/b?reservationId=R1"))
	})

	t.Run("other parameters survive", func(t *testing.T) {
		require.Equal(t, "https://a/b?x=1", appurl.StripReservationID("https://a/b?reservationId=R1&x=1"))
	})

	t.Run("no query leaves the url untouched", func(t *testing.T) {
		require.Equal(t, "https://a/b", appurl.StripReservationID("https://a/b"))
	})

	t.Run("parameter order is preserved", func(t *testing.T) {
		require.Equal(t, "https://a/b?a=1&b=2", appurl.StripReservationID("https://a/b?a=1&reservationId=R1&b=2"))
	})

	t.Run("bare trailing question mark is dropped", func(t *testing.T) {
		require.Equal(t, "https://a/b", appurl.StripReservationID("https://a/b?"))
	})

	t.Run("path portion is preserved verbatim", func(t *testing.T) {
		require.Equal(t, "https://a/b%20c", appurl.StripReservationID("https://a/b%20c?reservationId=R1"))
	})

	t.Run("every occurrence of the key is removed", func(t *testing.T) {
		require.Equal(t, "https://a/b?x=1", appurl.StripReservationID("https://a/b?reservationId=R1&x=1&reservationId=R2"))
	})
}

func TestBuildRedirectQuery(t *testing.T) {
	t.Run("backUrl first, clientId second", func(t *testing.T) {
		query := appurl.BuildRedirectQuery("https://a/b", "app1")
		require.Equal(t, "backUrl=https%3A%2F%2Fa%2Fb&clientId=app1", query)
	})

	t.Run("values are url-encoded", func(t *testing.T) {
		query := appurl.BuildRedirectQuery("https://a/b?x=1", "my app")
		require.Equal(t, "backUrl=https%3A%2F%2Fa%2Fb%3Fx%3D1&clientId=my+app", query)
	})
}
