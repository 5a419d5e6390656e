package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/learnhub/learnhub/config"
)

var errNoToken = errors.New("no authentication token in request")

// requestToken extracts the session token. The cookie wins; clients without
// cookie support send the same token as a Bearer header instead.
func requestToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(config.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errNoToken
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", errors.New("invalid authorization header format")
	}

	return tokenString, nil
}

// Multipart forms carry every value as a string. The helpers below coerce
// the provided fields into typed partial-update values; an absent field
// yields nil, which the storage layer treats as "leave untouched".

func formString(r *http.Request, key string) *string {
	if r.Form == nil {
		return nil
	}
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func formFloat(r *http.Request, key string) (*float64, error) {
	raw := formString(r, key)
	if raw == nil {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func formBool(r *http.Request, key string) (*bool, error) {
	raw := formString(r, key)
	if raw == nil {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// formStringList parses a JSON array form value, like
// requirements=["A laptop","Basic math"].
func formStringList(r *http.Request, key string) (*[]string, error) {
	raw := formString(r, key)
	if raw == nil {
		return nil, nil
	}
	if strings.TrimSpace(*raw) == "" {
		empty := []string{}
		return &empty, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(*raw), &list); err != nil {
		return nil, err
	}
	return &list, nil
}
