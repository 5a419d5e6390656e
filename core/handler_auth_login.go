package core

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/learnhub/learnhub/crypto"
)

// LoginHandler handles password-based authentication
// Endpoint: POST /api/auth/login
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		WriteJsonError(w, errorInvalidEmailFormat)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		a.Logger().Error("failed to load user", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	// An unknown email and a wrong password produce the same response so
	// the endpoint does not leak which addresses have accounts.
	if user == nil {
		WriteJsonError(w, errorInvalidCredentials)
		return
	}

	// Accounts created through a federated provider have no local password.
	if user.Password == "" {
		WriteJsonError(w, errorFederatedAccount)
		return
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		WriteJsonError(w, errorInvalidCredentials)
		return
	}

	cfg := a.Config()
	token, expiry, err := crypto.NewJwtSessionToken(user.ID, user.Email, user.Password, []byte(cfg.Jwt.AuthSecret), cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	a.writeAuthResponse(w, http.StatusOK, token, expiry, user)
}
