package config

import (
	"fmt"
	"os"
	"time"
)

// Environment variable names for secrets that must not live in the config file.
const (
	EnvGoogleClientID     = "OAUTH2_GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "OAUTH2_GOOGLE_CLIENT_SECRET"
	EnvSmtpPassword       = "SMTP_PASSWORD"
)

const (
	OAuth2ProviderGoogle = "google"
)

// SessionCookieName is the cookie that carries the session token. The token
// is also returned in response bodies so non-browser clients can send it as
// a bearer token instead.
const SessionCookieName = "token"

// Duration wraps time.Duration so it can be written as "45m" or "168h" in
// TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Jwt struct {
	AuthSecret        string   `toml:"auth_secret"`
	AuthTokenDuration Duration `toml:"auth_token_duration"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	CorsOrigin              string   `toml:"cors_origin"`

	// SecureCookies marks the session cookie Secure. Disable only for local
	// plain-http development.
	SecureCookies bool `toml:"secure_cookies"`
}

type Smtp struct {
	Enabled     bool   `toml:"enabled"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	FromName    string `toml:"from_name"`
	FromAddress string `toml:"from_address"`
	UseStartTLS bool   `toml:"use_start_tls"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
}

type OAuth2Provider struct {
	Name         string   `toml:"name"`
	DisplayName  string   `toml:"display_name"`
	RedirectURL  string   `toml:"redirect_url"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	UserInfoURL  string   `toml:"user_info_url"`
	Scopes       []string `toml:"scopes"`
	PKCE         bool     `toml:"pkce"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
}

// FillEnvVars overrides credentials with environment variables when set.
func (p *OAuth2Provider) FillEnvVars(clientIDEnv, clientSecretEnv string) {
	if v := os.Getenv(clientIDEnv); v != "" {
		p.ClientID = v
	}
	if v := os.Getenv(clientSecretEnv); v != "" {
		p.ClientSecret = v
	}
}

func (p *OAuth2Provider) HasCredentials() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

type Uploads struct {
	Dir           string `toml:"dir"`
	MaxImageBytes int64  `toml:"max_image_bytes"`
	MaxVideoBytes int64  `toml:"max_video_bytes"`
}

type Cache struct {
	PublishedCoursesTTL Duration `toml:"published_courses_ttl"`
}

type Config struct {
	DBFile string `toml:"db_file"`

	Jwt             Jwt                       `toml:"jwt"`
	Server          Server                    `toml:"server"`
	Smtp            Smtp                      `toml:"smtp"`
	OAuth2Providers map[string]OAuth2Provider `toml:"oauth2_providers"`
	Uploads         Uploads                   `toml:"uploads"`
	Cache           Cache                     `toml:"cache"`
}
