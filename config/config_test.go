package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestProvider_GetAndUpdate(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("NewProvider did not panic with nil config")
		}
	}()

	cfg1 := &Config{Server: Server{Addr: ":8080"}}
	provider := NewProvider(cfg1)
	if !reflect.DeepEqual(cfg1, provider.Get()) {
		t.Errorf("Get() got = %v, want %v", provider.Get(), cfg1)
	}

	cfg2 := &Config{Server: Server{Addr: ":9090"}}
	provider.Update(cfg2)
	if !reflect.DeepEqual(cfg2, provider.Get()) {
		t.Errorf("Get() got = %v, want %v", provider.Get(), cfg2)
	}

	_ = NewProvider(nil)
}

func TestProvider_Concurrency(t *testing.T) {
	t.Parallel()

	cfg1 := &Config{Server: Server{Addr: ":8080"}}
	cfg2 := &Config{Server: Server{Addr: ":9090"}}
	provider := NewProvider(cfg1)

	var wg sync.WaitGroup
	numGoroutines := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = provider.Get()
			} else {
				provider.Update(cfg2)
			}
		}(i)
	}
	wg.Wait()
}

func TestDurationUnmarshalText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		text    string
		want    time.Duration
		wantErr bool
	}{
		{name: "minutes", text: "45m", want: 45 * time.Minute},
		{name: "hours", text: "168h", want: 168 * time.Hour},
		{name: "composite", text: "1h30m", want: 90 * time.Minute},
		{name: "garbage", text: "not-a-duration", wantErr: true},
		{name: "bare number", text: "42", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tc.text))
			if (err != nil) != tc.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v, wantErr %v", tc.text, err, tc.wantErr)
			}
			if !tc.wantErr && d.Duration != tc.want {
				t.Errorf("UnmarshalText(%q) = %v, want %v", tc.text, d.Duration, tc.want)
			}
		})
	}
}

func TestValidateServer(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		addr     string
		wantAddr string
		wantErr  bool
	}{
		{name: "port only defaults host", addr: ":8080", wantAddr: "localhost:8080"},
		{name: "host and port", addr: "example.com:8080", wantAddr: "example.com:8080"},
		{name: "empty", addr: "", wantErr: true},
		{name: "missing port", addr: "example.com", wantErr: true},
		{name: "bad port", addr: "localhost:notaport", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := Server{Addr: tc.addr}
			err := validateServer(&server)
			if (err != nil) != tc.wantErr {
				t.Fatalf("validateServer(%q) error = %v, wantErr %v", tc.addr, err, tc.wantErr)
			}
			if !tc.wantErr && server.Addr != tc.wantAddr {
				t.Errorf("validateServer(%q) addr = %q, want %q", tc.addr, server.Addr, tc.wantAddr)
			}
		})
	}
}

func TestValidateDefaultConfig(t *testing.T) {
	t.Parallel()

	if err := Validate(NewDefaultConfig()); err != nil {
		t.Errorf("Validate(NewDefaultConfig()) error = %v", err)
	}
}

func TestValidateJwt(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Jwt.AuthSecret = "too-short"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() with short auth secret succeeded, want error")
	}

	cfg = NewDefaultConfig()
	cfg.Jwt.AuthTokenDuration = Duration{}
	if err := Validate(cfg); err == nil {
		t.Error("Validate() with zero token duration succeeded, want error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnhub.toml")
	content := `
db_file = "test.db"

[server]
addr = ":9191"

[jwt]
auth_token_duration = "24h"

[uploads]
dir = "testdata/uploads"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := Load(path, logger)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBFile != "test.db" {
		t.Errorf("DBFile = %q, want test.db", cfg.DBFile)
	}
	if cfg.Server.Addr != "localhost:9191" {
		t.Errorf("Server.Addr = %q, want localhost:9191", cfg.Server.Addr)
	}
	if cfg.Jwt.AuthTokenDuration.Duration != 24*time.Hour {
		t.Errorf("AuthTokenDuration = %v, want 24h", cfg.Jwt.AuthTokenDuration.Duration)
	}
	// Values absent from the file keep their defaults.
	if cfg.Smtp.Host != "smtp.gmail.com" {
		t.Errorf("Smtp.Host = %q, want default smtp.gmail.com", cfg.Smtp.Host)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvGoogleClientID, "env-client-id")
	t.Setenv(EnvGoogleClientSecret, "env-client-secret")
	t.Setenv(EnvSmtpPassword, "env-smtp-password")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := Load("", logger)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	google := cfg.OAuth2Providers[OAuth2ProviderGoogle]
	if google.ClientID != "env-client-id" || google.ClientSecret != "env-client-secret" {
		t.Errorf("google credentials = (%q, %q), want env values", google.ClientID, google.ClientSecret)
	}
	if !google.HasCredentials() {
		t.Error("HasCredentials() = false after env fill")
	}
	if cfg.Smtp.Password != "env-smtp-password" {
		t.Errorf("Smtp.Password = %q, want env value", cfg.Smtp.Password)
	}
}
