// Package token decodes, validates and (for tests and issuer stubs)
// mints the compact signed session tokens the widget trades in.
package token

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	widgeterrors "github.com/jrsteele09/go-auth-widget/internal/errors"
)

// Claim names used in widget session tokens
const (
	claimID          = "id"
	claimLogin       = "login"
	claimNotBefore   = "notBefore"
	claimExpiresAt   = "expiresAt"
	claimAudience    = "audience"
	claimDisplayName = "displayName"
)

// Decode parses a compact JWS string and extracts the widget claim set.
// The signature is not verified: the widget holds no key material and
// trusts the exchange endpoint it fetched the token from. A malformed
// envelope, an unreadable payload, or any missing or mistyped claim
// fails the decode as a whole; no partial claim set is ever returned.
func Decode(raw string) (*Claims, error) {
	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(widgeterrors.ErrMalformedToken, err.Error())
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrap(widgeterrors.ErrMalformedToken, "error extracting claims")
	}

	id, ok := mapClaims[claimID].(string)
	if !ok {
		return nil, errors.Wrap(widgeterrors.ErrMissingClaim, claimID)
	}
	login, ok := mapClaims[claimLogin].(string)
	if !ok {
		return nil, errors.Wrap(widgeterrors.ErrMissingClaim, claimLogin)
	}
	// JSON numbers arrive as float64
	notBefore, ok := mapClaims[claimNotBefore].(float64)
	if !ok {
		return nil, errors.Wrap(widgeterrors.ErrMissingClaim, claimNotBefore)
	}
	expiresAt, ok := mapClaims[claimExpiresAt].(float64)
	if !ok {
		return nil, errors.Wrap(widgeterrors.ErrMissingClaim, claimExpiresAt)
	}
	audience, ok := mapClaims[claimAudience].(string)
	if !ok {
		return nil, errors.Wrap(widgeterrors.ErrMissingClaim, claimAudience)
	}
	displayName, ok := mapClaims[claimDisplayName].(string)
	if !ok {
		return nil, errors.Wrap(widgeterrors.ErrMissingClaim, claimDisplayName)
	}

	return &Claims{
		ID:          id,
		Login:       login,
		NotBefore:   int64(notBefore),
		ExpiresAt:   int64(expiresAt),
		Audience:    audience,
		DisplayName: displayName,
	}, nil
}

// ReservationRequest is the token-exchange request body. The widget only
// ever writes this payload; the response never echoes it back, so there
// is no decoding counterpart.
type ReservationRequest struct {
	ReservationID string `json:"reservationId"`
}

// EncodeReservationRequest builds the exchange payload for a one-time
// reservation id.
func EncodeReservationRequest(reservationID string) ReservationRequest {
	return ReservationRequest{ReservationID: reservationID}
}
