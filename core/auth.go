package core

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/learnhub/learnhub/config"
	"github.com/learnhub/learnhub/crypto"
	"github.com/learnhub/learnhub/db"
)

// Authenticator defines the interface for authentication operations
type Authenticator interface {
	Authenticate(r *http.Request) (*db.User, error, jsonResponse)
}

// DefaultAuthenticator implements Authenticator using the standard authentication flow
type DefaultAuthenticator struct {
	dbAuth         db.DbAuth
	logger         *slog.Logger
	configProvider *config.Provider
}

// NewDefaultAuthenticator creates a new DefaultAuthenticator instance
func NewDefaultAuthenticator(dbAuth db.DbAuth, logger *slog.Logger, configProvider *config.Provider) *DefaultAuthenticator {
	return &DefaultAuthenticator{
		dbAuth:         dbAuth,
		logger:         logger,
		configProvider: configProvider,
	}
}

// Authenticate verifies the session token from the cookie or the bearer
// header. The token's signing key derives from the user's credentials, so
// the user record must be loaded before the signature can be checked.
func (a *DefaultAuthenticator) Authenticate(r *http.Request) (*db.User, error, jsonResponse) {
	errAuth := errors.New("auth error")

	tokenString, err := requestToken(r)
	if err != nil {
		if errors.Is(err, errNoToken) {
			return nil, errAuth, errorNoAuthToken
		}
		return nil, errAuth, errorInvalidTokenFormat
	}

	// Parse unverified token to get claims
	claims, err := crypto.ParseJwtUnverified(tokenString)
	if err != nil {
		return nil, errAuth, errorJwtInvalidToken
	}

	// Validate session claims before fetching user
	if err := crypto.ValidateSessionClaims(claims); err != nil {
		if errors.Is(err, crypto.ErrJwtTokenExpired) {
			return nil, errAuth, errorJwtTokenExpired
		}
		return nil, errAuth, errorJwtInvalidToken
	}

	userID := claims[crypto.ClaimUserID].(string)
	user, err := a.dbAuth.GetUserById(userID)
	if err != nil {
		a.logger.Error("failed to load user for session", "error", err)
		return nil, errAuth, errorAuthDatabaseError
	}
	if user == nil {
		return nil, errAuth, errorJwtInvalidToken
	}

	// Generate signing key using user credentials
	// Use user.Email and user.Password which are confirmed to belong to userID
	cfg := a.configProvider.Get()
	signingKey, err := crypto.NewJwtSigningKeyWithCredentials(user.Email, user.Password, []byte(cfg.Jwt.AuthSecret))
	if err != nil {
		return nil, errAuth, errorTokenGeneration
	}

	// Verify token signature and standard claims (like expiry)
	_, err = crypto.ParseJwt(tokenString, signingKey)
	if err != nil {
		if errors.Is(err, crypto.ErrJwtTokenExpired) {
			return nil, errAuth, errorJwtTokenExpired
		}
		if errors.Is(err, crypto.ErrJwtInvalidSigningMethod) {
			return nil, errAuth, errorJwtInvalidSignMethod
		}
		return nil, errAuth, errorJwtInvalidToken
	}

	return user, nil, jsonResponse{}
}
