package token

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Signer mints signed session tokens carrying the widget claim set. The
// widget core never signs in production - signing belongs to the
// identity provider - but tests and the demo issuer stub need
// well-formed raw tokens to feed the codec.
type Signer interface {
	// Sign creates a signed compact token from the claim set
	Sign(claims *Claims) (string, error)
}

// HMACSigner implements Signer using symmetric HMAC-SHA256
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates a new HMAC signer with the given secret
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{
		secret: []byte(secret),
	}
}

func (h *HMACSigner) Sign(claims *Claims) (string, error) {
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		claimID:          claims.ID,
		claimLogin:       claims.Login,
		claimNotBefore:   claims.NotBefore,
		claimExpiresAt:   claims.ExpiresAt,
		claimAudience:    claims.Audience,
		claimDisplayName: claims.DisplayName,
	})
	signedToken, err := tok.SignedString(h.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token with HMAC")
	}
	return signedToken, nil
}
