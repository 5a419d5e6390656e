package core

import (
	"context"
	"net/http"

	"github.com/learnhub/learnhub/db"
)

// contextKey is a type for context keys
type contextKey string

const userKey contextKey = "user"

// UserFromContext returns the authenticated user stored by the auth
// middleware, or nil when the request is unauthenticated.
func UserFromContext(ctx context.Context) *db.User {
	user, _ := ctx.Value(userKey).(*db.User)
	return user
}

func requestWithUser(r *http.Request, user *db.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}
