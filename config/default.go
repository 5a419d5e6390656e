package config

import (
	"time"

	"github.com/learnhub/learnhub/crypto"
)

// NewDefaultConfig creates a new Config with sensible defaults.
// All secret values are randomly generated.
func NewDefaultConfig() *Config {
	return &Config{
		DBFile: "learnhub.db",
		Jwt: Jwt{
			AuthSecret:        crypto.RandomString(32, crypto.AlphanumericAlphabet),
			AuthTokenDuration: Duration{Duration: 7 * 24 * time.Hour},
		},
		Server: Server{
			Addr:                    ":8080",
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
			ReadTimeout:             Duration{Duration: 2 * time.Minute},
			ReadHeaderTimeout:       Duration{Duration: 5 * time.Second},
			WriteTimeout:            Duration{Duration: 2 * time.Minute},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			CorsOrigin:              "http://localhost:5173",
			SecureCookies:           false,
		},
		Smtp: Smtp{
			Enabled:     false,
			Host:        "smtp.gmail.com",
			Port:        587,
			FromName:    "LearnHub",
			FromAddress: "",
			UseStartTLS: true,
			Username:    "",
			Password:    "",
		},
		OAuth2Providers: map[string]OAuth2Provider{
			OAuth2ProviderGoogle: {
				Name:        OAuth2ProviderGoogle,
				DisplayName: "Google",
				RedirectURL: "http://localhost:5173/oauth2/google/callback",
				AuthURL:     "https://accounts.google.com/o/oauth2/v2/auth",
				TokenURL:    "https://oauth2.googleapis.com/token",
				UserInfoURL: "https://www.googleapis.com/oauth2/v3/userinfo",
				Scopes: []string{
					"https://www.googleapis.com/auth/userinfo.profile",
					"https://www.googleapis.com/auth/userinfo.email",
				},
				PKCE:         true,
				ClientID:     "",
				ClientSecret: "",
			},
		},
		Uploads: Uploads{
			Dir:           "uploads",
			MaxImageBytes: 10 * 1024 * 1024,
			MaxVideoBytes: 700 * 1024 * 1024,
		},
		Cache: Cache{
			PublishedCoursesTTL: Duration{Duration: 1 * time.Minute},
		},
	}
}
