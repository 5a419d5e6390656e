package core

import (
	"net/http"
	"time"

	"github.com/learnhub/learnhub/config"
	"github.com/learnhub/learnhub/db"
)

// This file defines the standardized response formats for authentication
// endpoints. The session token travels twice: in the http-only cookie for
// browsers and in the response body for clients that prefer a bearer header.
//
// Example authentication response (successful login):
// {
//   "status": 200,
//   "code": "ok_authentication",
//   "message": "Authentication successful",
//   "data": {
//     "token_type": "Bearer",
//     "access_token": "eyJhbGciOiJIUzI...",
//     "expires_in": 604800,
//     "record": {
//       "id": "user123",
//       "email": "user@example.com",
//       "name": "John Doe",
//       "role": "student",
//       "provider": "local"
//     }
//   }
// }

const (
	// oks for non precomputed, dynamic auth responses
	CodeOkAuthentication      = "ok_authentication"        // Standard success code for auth
	CodeOkOAuth2ProvidersList = "ok_oauth2_providers_list" // Success code for OAuth2 providers list
)

// AuthRecord represents the user record in authentication responses.
// The password hash and reset state never leave the server.
type AuthRecord struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Provider    string `json:"provider"`
	Description string `json:"description,omitempty"`
	Photo       string `json:"photo,omitempty"`
}

// AuthData represents the authentication response structure
type AuthData struct {
	TokenType   string     `json:"token_type"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
	Record      AuthRecord `json:"record"`
}

func newAuthRecord(user *db.User) AuthRecord {
	return AuthRecord{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Provider:    user.Provider,
		Description: user.Description,
		Photo:       user.Photo,
	}
}

// NewAuthData creates a new AuthData instance
func NewAuthData(token string, expiry time.Time, user *db.User) *AuthData {
	return &AuthData{
		TokenType:   "Bearer",
		AccessToken: token,
		ExpiresIn:   int(time.Until(expiry).Seconds()),
		Record:      newAuthRecord(user),
	}
}

// writeAuthResponse writes a standardized authentication response and sets
// the session cookie.
func (a *App) writeAuthResponse(w http.ResponseWriter, status int, token string, expiry time.Time, user *db.User) {
	a.setSessionCookie(w, token, expiry)

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  status,
			Code:    CodeOkAuthentication,
			Message: "Authentication successful",
		},
		Data: NewAuthData(token, expiry, user),
	}
	WriteJsonWithData(w, response)
}

func (a *App) setSessionCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		Secure:   a.Config().Server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the cookie. Logging out without a session is
// fine; the result is the same.
func (a *App) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.Config().Server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
