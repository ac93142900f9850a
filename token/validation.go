package token

// Validator decides whether a decoded claim set is currently usable.
// It holds no state and caches nothing: every call is evaluated fresh
// against the supplied reference time, so a display decision can never
// rely on a stale boolean.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsExpired reports whether the token is expired at now (epoch seconds).
// A token expiring exactly at now counts as expired. notBefore is not
// checked: a token that only becomes valid in the future is still
// accepted, matching the issuer's observed policy.
func (v *Validator) IsExpired(now float64, claims *Claims) bool {
	return now >= float64(claims.ExpiresAt)
}

// IsAudienceValid reports whether the token was issued for the expected
// application. Comparison is exact and case-sensitive.
func (v *Validator) IsAudienceValid(claims *Claims, expectedAudience string) bool {
	return claims.Audience == expectedAudience
}

// IsValid reports whether the claim set is usable: audience matches and
// the token has not expired.
func (v *Validator) IsValid(claims *Claims, now float64, expectedAudience string) bool {
	return v.IsAudienceValid(claims, expectedAudience) && !v.IsExpired(now, claims)
}

// IsRawTokenValid decodes raw and evaluates it. A token that fails to
// decode is reported as invalid rather than surfaced as an error.
func (v *Validator) IsRawTokenValid(raw string, now float64, expectedAudience string) bool {
	claims, err := Decode(raw)
	if err != nil {
		return false
	}
	return v.IsValid(claims, now, expectedAudience)
}
