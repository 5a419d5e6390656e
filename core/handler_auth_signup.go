package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/learnhub/learnhub/crypto"
	"github.com/learnhub/learnhub/db"
)

// SignupHandler handles password-based user registration with validation
// Endpoint: POST /api/auth/signup
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) SignupHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		PhotoURL string `json:"photoUrl"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	// Validate required fields. The role must be stated explicitly here;
	// only federated signups may omit it.
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Role = strings.TrimSpace(req.Role)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		WriteJsonError(w, errorInvalidEmailFormat)
		return
	}

	if len(req.Password) < MinPasswordLength {
		WriteJsonError(w, errorPasswordComplexity)
		return
	}

	if err := ValidateRole(req.Role); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	// Hash password before storage
	hashedPassword, err := crypto.GenerateHash(req.Password)
	if err != nil {
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	newUser := db.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashedPassword,
		Role:     req.Role,
		Photo:    strings.TrimSpace(req.PhotoURL),
	}

	retrievedUser, err := a.DbAuth().CreateUserWithPassword(newUser)
	if err != nil {
		if errors.Is(err, db.ErrConstraintUnique) {
			WriteJsonError(w, errorEmailConflict)
			return
		}
		a.Logger().Error("failed to create user", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	// Generate JWT session token for immediate authentication
	cfg := a.Config()
	token, expiry, err := crypto.NewJwtSessionToken(retrievedUser.ID, retrievedUser.Email, retrievedUser.Password, []byte(cfg.Jwt.AuthSecret), cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	a.writeAuthResponse(w, http.StatusCreated, token, expiry, retrievedUser)
}
