package errors

import (
	"errors"
	"fmt"
)

// Common error types for the session widget core
var (
	// Token decode errors
	ErrMalformedToken = errors.New("malformed token")
	ErrMissingClaim   = errors.New("missing or invalid claim")

	// Storage errors
	ErrNoStoredToken       = errors.New("no stored token")
	ErrStoredTokenRejected = errors.New("stored token rejected")

	// Exchange errors
	ErrExchangeFailed   = errors.New("token exchange failed")
	ErrEmptyAccessToken = errors.New("exchange response missing access token")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
