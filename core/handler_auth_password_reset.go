package core

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/learnhub/learnhub/crypto"
)

// ResetPasswordHandler sets a new password after a verified reset code
// Endpoint: POST /api/auth/resetPassword
// Authenticated: No
// Allowed Mimetype: application/json
//
// UpdatePassword consumes the verified flag, so a single code grants a
// single password change.
func (a *App) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.NewPassword == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	if len(req.NewPassword) < MinPasswordLength {
		WriteJsonError(w, errorPasswordComplexity)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		a.Logger().Error("failed to load user", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil || !user.ResetVerified {
		WriteJsonError(w, errorResetNotAllowed)
		return
	}

	hashedPassword, err := crypto.GenerateHash(req.NewPassword)
	if err != nil {
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	if err := a.DbAuth().UpdatePassword(user.ID, hashedPassword); err != nil {
		a.Logger().Error("failed to update password", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	WriteJsonOk(w, okPasswordReset)
}
