package core

import (
	"net/http"
)

// RequireAuth rejects requests that do not carry a valid session token and
// attaches the authenticated user to the request context for the handler.
func (a *App) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err, resp := a.Auth().Authenticate(r)
		if err != nil {
			WriteJsonError(w, resp)
			return
		}
		next.ServeHTTP(w, requestWithUser(r, user))
	})
}

// Cors allows the configured browser origin to call the API with
// credentials. Preflight requests are answered here and never reach the
// handler chain.
func (a *App) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := a.Config()
		if cfg.Server.CorsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", cfg.Server.CorsOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
