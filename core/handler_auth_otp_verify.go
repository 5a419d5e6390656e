package core

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// VerifyOtpHandler checks a reset code and marks the account ready for a
// password change
// Endpoint: POST /api/auth/verifyOtp
// Authenticated: No
// Allowed Mimetype: application/json
//
// Every failure mode returns the same response so a caller cannot probe
// which part of the check failed.
func (a *App) VerifyOtpHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
		Otp   string `json:"otp"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Otp = strings.TrimSpace(req.Otp)
	if req.Email == "" || req.Otp == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		a.Logger().Error("failed to load user", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil || user.ResetCode == "" {
		WriteJsonError(w, errorInvalidOtp)
		return
	}

	if subtle.ConstantTimeCompare([]byte(user.ResetCode), []byte(req.Otp)) != 1 {
		WriteJsonError(w, errorInvalidOtp)
		return
	}

	if time.Now().UTC().After(user.ResetCodeExpires) {
		WriteJsonError(w, errorInvalidOtp)
		return
	}

	if err := a.DbAuth().MarkResetVerified(user.ID); err != nil {
		a.Logger().Error("failed to mark reset verified", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	WriteJsonOk(w, okOtpVerified)
}
