package core

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/learnhub/learnhub/config"
	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/router"
)

// MockValidator implements the Validator interface with configurable
// function fields.
type MockValidator struct {
	ContentTypeFunc func(r *http.Request, allowedType string) (jsonResponse, error)
}

func (m *MockValidator) ContentType(r *http.Request, allowedType string) (jsonResponse, error) {
	if m.ContentTypeFunc != nil {
		return m.ContentTypeFunc(r, allowedType)
	}
	return jsonResponse{}, nil
}

// MockAuthenticator implements the Authenticator interface with a
// configurable function field.
type MockAuthenticator struct {
	AuthenticateFunc func(r *http.Request) (*db.User, error, jsonResponse)
}

func (m *MockAuthenticator) Authenticate(r *http.Request) (*db.User, error, jsonResponse) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(r)
	}
	return nil, nil, jsonResponse{}
}

// MockMailer records sent reset codes.
type MockMailer struct {
	SendPasswordResetCodeFunc func(ctx context.Context, email, code string) error
}

func (m *MockMailer) SendPasswordResetCode(ctx context.Context, email, code string) error {
	if m.SendPasswordResetCodeFunc != nil {
		return m.SendPasswordResetCodeFunc(ctx, email, code)
	}
	return nil
}

// MockFileStore implements filestore.Store without touching disk.
type MockFileStore struct {
	SaveFunc   func(r io.Reader, originalName string, maxBytes int64) (string, error)
	DeleteFunc func(name string) error
}

func (m *MockFileStore) Save(r io.Reader, originalName string, maxBytes int64) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(r, originalName, maxBytes)
	}
	return "stored-file", nil
}

func (m *MockFileStore) Delete(name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(name)
	}
	return nil
}

func (m *MockFileStore) Dir() string { return "" }

// mockParams serves fixed URL parameters regardless of the request.
type mockParams struct {
	params router.Params
}

func (m *mockParams) Get(ctx context.Context) router.Params {
	return m.params
}

func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Jwt.AuthSecret = "test_secret_32_bytes_long_xxxxxx"
	cfg.Jwt.AuthTokenDuration = config.Duration{Duration: 15 * time.Minute}
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// requestWithTestUser attaches a user the way the auth middleware does.
func requestWithTestUser(r *http.Request, user *db.User) *http.Request {
	return requestWithUser(r, user)
}
