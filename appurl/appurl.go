// Package appurl manipulates the application URL the widget is embedded
// under. Only the query string is ever touched; the path portion, which
// is everything before the first '?', is preserved verbatim.
package appurl

import (
	"net/url"
	"strings"
)

const reservationKey = "reservationId"

// ExtractReservationID returns the one-time reservation id bound to the
// reservationId query key, if present. The URL is split at the first
// '?'; everything after it is parsed as a flat query string, and the
// first occurrence of a repeated key wins.
func ExtractReservationID(appURL string) (string, bool) {
	_, query, ok := splitQuery(appURL)
	if !ok {
		return "", false
	}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil || decodedKey != reservationKey {
			continue
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		return decodedValue, true
	}
	return "", false
}

// StripReservationID removes the reservationId key from the query string
// and re-renders the URL. Remaining parameters keep their original order
// and encoding; if none remain, the result carries no trailing '?'.
func StripReservationID(appURL string) string {
	path, query, ok := splitQuery(appURL)
	if !ok {
		return appURL
	}
	kept := make([]string, 0, strings.Count(query, "&")+1)
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if decodedKey, err := url.QueryUnescape(key); err == nil && decodedKey == reservationKey {
			continue
		}
		kept = append(kept, pair)
	}
	if len(kept) == 0 {
		return path
	}
	return path + "?" + strings.Join(kept, "&")
}

// BuildRedirectQuery renders the identity-provider redirect query with
// exactly two keys, backUrl then clientId, in that order.
func BuildRedirectQuery(backURL, clientID string) string {
	return "backUrl=" + url.QueryEscape(backURL) + "&clientId=" + url.QueryEscape(clientID)
}

func splitQuery(appURL string) (path, query string, ok bool) {
	i := strings.Index(appURL, "?")
	if i < 0 {
		return appURL, "", false
	}
	return appURL[:i], appURL[i+1:], true
}
