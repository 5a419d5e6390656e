package core

import (
	"net/http"
)

// LogoutHandler clears the session cookie
// Endpoint: POST /api/auth/logout
// Authenticated: No (logging out an expired session must still succeed)
func (a *App) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	a.clearSessionCookie(w)
	WriteJsonOk(w, okLogout)
}
