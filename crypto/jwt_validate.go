package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The jwt parser validates the values of standard claims like exp IF THEY
// ARE PRESENT, but it does not enforce their presence. The helpers below
// perform the presence checks the parser skips, against unverified claims,
// so obviously bad tokens are discarded before the per-user signing key is
// derived from the database.

// ValidateClaimUserID checks that the user_id claim exists and is a
// non-empty string.
func ValidateClaimUserID(claims jwt.MapClaims) error {
	id, ok := claims[ClaimUserID].(string)
	if !ok || id == "" {
		return ErrJwtInvalidToken
	}
	return nil
}

// ValidateClaimExpiresAt checks that the exp claim exists and has not
// passed. ParseJwt repeats this check against the verified token; doing it
// here first avoids a user lookup for tokens that are already dead.
func ValidateClaimExpiresAt(claims jwt.MapClaims) error {
	exp, ok := claims[ClaimExpiresAt].(float64)
	if !ok {
		return ErrJwtInvalidToken
	}
	if time.Now().After(time.Unix(int64(exp), 0)) {
		return ErrJwtTokenExpired
	}
	return nil
}

// ValidateSessionClaims runs every check a session token must pass before
// the signature can be verified.
func ValidateSessionClaims(claims jwt.MapClaims) error {
	if err := ValidateClaimUserID(claims); err != nil {
		return err
	}
	return ValidateClaimExpiresAt(claims)
}
