package oauth2

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/learnhub/learnhub/config"
	"github.com/learnhub/learnhub/db"
)

// UserFromUserInfoURL maps a provider userinfo response to a db.User. The
// claims come from the provider over the server-side channel, never from the
// client, so the email here is an asserted identity.
func UserFromUserInfoURL(resp *http.Response, providerName string) (*db.User, error) {
	switch providerName {
	case config.OAuth2ProviderGoogle:
		return googleUser(resp)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}

func googleUser(resp *http.Response) (*db.User, error) {
	extracted := struct {
		Id            string `json:"sub"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&extracted); err != nil {
		return nil, fmt.Errorf("failed to decode google user info: %w", err)
	}

	// An unverified provider email must not claim an account keyed by that
	// address.
	if !extracted.EmailVerified {
		return nil, fmt.Errorf("google email not verified")
	}

	return &db.User{
		Email:    extracted.Email,
		Name:     extracted.Name,
		Photo:    extracted.Picture,
		Provider: db.ProviderGoogle,
	}, nil
}
