package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/learnhub/learnhub/config"
	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/db/mock"
)

func newSignupApp(dbm *mock.Db) *App {
	return &App{
		validator:      &DefaultValidator{},
		dbAuth:         dbm,
		logger:         discardLogger(),
		configProvider: config.NewProvider(testConfig()),
	}
}

func TestSignupHandler_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		requestBody string
		wantError   jsonResponse
	}{
		{
			name:        "invalid content type",
			contentType: "text/plain",
			requestBody: `{"name":"Ana","email":"ana@example.com","password":"secret1"}`,
			wantError:   errorInvalidContentType,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			requestBody: `{"name":"Ana",`,
			wantError:   errorInvalidRequest,
		},
		{
			name:        "missing name",
			contentType: "application/json",
			requestBody: `{"email":"ana@example.com","password":"secret1"}`,
			wantError:   errorMissingFields,
		},
		{
			name:        "missing email",
			contentType: "application/json",
			requestBody: `{"name":"Ana","password":"secret1"}`,
			wantError:   errorMissingFields,
		},
		{
			name:        "missing password",
			contentType: "application/json",
			requestBody: `{"name":"Ana","email":"ana@example.com"}`,
			wantError:   errorMissingFields,
		},
		{
			name:        "missing role",
			contentType: "application/json",
			requestBody: `{"name":"Ana","email":"ana@example.com","password":"secret1"}`,
			wantError:   errorMissingFields,
		},
		{
			name:        "invalid email format",
			contentType: "application/json",
			requestBody: `{"name":"Ana","email":"not-an-email","password":"secret1","role":"student"}`,
			wantError:   errorInvalidEmailFormat,
		},
		{
			name:        "password too short",
			contentType: "application/json",
			requestBody: `{"name":"Ana","email":"ana@example.com","password":"abc","role":"student"}`,
			wantError:   errorPasswordComplexity,
		},
		{
			name:        "unknown role",
			contentType: "application/json",
			requestBody: `{"name":"Ana","email":"ana@example.com","password":"secret1","role":"admin"}`,
			wantError:   errorInvalidRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", tc.contentType)
			rr := httptest.NewRecorder()

			app := newSignupApp(&mock.Db{})
			app.SignupHandler(rr, req)

			if rr.Code != tc.wantError.status {
				t.Errorf("expected status %d, got %d", tc.wantError.status, rr.Code)
			}
			if !strings.Contains(rr.Body.String(), `"status"`) {
				t.Error("expected a json error body")
			}
		})
	}
}

func TestSignupHandler_Success(t *testing.T) {
	var createdUser db.User
	dbm := &mock.Db{
		CreateUserWithPasswordFunc: func(user db.User) (*db.User, error) {
			createdUser = user
			stored := user
			stored.ID = uuid.NewString()
			return &stored, nil
		},
	}

	body := `{"name":"Ana","email":"ana@example.com","password":"secret1","role":"educator","photoUrl":"https://cdn.example.com/ana.png"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app := newSignupApp(dbm)
	app.SignupHandler(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	// The stored password must be a hash, never the plaintext.
	if createdUser.Password == "secret1" || createdUser.Password == "" {
		t.Error("password was not hashed before storage")
	}
	if createdUser.Role != db.RoleEducator {
		t.Errorf("expected role %q, got %q", db.RoleEducator, createdUser.Role)
	}
	if createdUser.Photo != "https://cdn.example.com/ana.png" {
		t.Errorf("expected the supplied photo url to be stored, got %q", createdUser.Photo)
	}

	var respBody map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&respBody); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data, ok := respBody["data"].(map[string]interface{})
	if !ok {
		t.Fatal("expected data field in response")
	}
	if _, ok := data["access_token"]; !ok {
		t.Error("response missing access_token")
	}

	// The session token must also be set as a cookie.
	cookies := rr.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == config.SessionCookieName && c.Value != "" {
			found = true
			if !c.HttpOnly {
				t.Error("session cookie must be HttpOnly")
			}
		}
	}
	if !found {
		t.Error("session cookie not set")
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	dbm := &mock.Db{
		CreateUserWithPasswordFunc: func(user db.User) (*db.User, error) {
			return nil, db.ErrConstraintUnique
		},
	}

	body := `{"name":"Ana","email":"ana@example.com","password":"secret1","role":"student"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app := newSignupApp(dbm)
	app.SignupHandler(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}
