package core

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/learnhub/learnhub/crypto"
	"github.com/learnhub/learnhub/db"
)

// OtpValidity is how long a password reset code stays usable.
const OtpValidity = 5 * time.Minute

// RequestOtpHandler generates a one time code and mails it to the account owner
// Endpoint: POST /api/auth/sendOtp
// Authenticated: No
// Allowed Mimetype: application/json
//
// A fresh request overwrites any previous code and clears a pending
// verification, so only the latest code is ever valid.
func (a *App) RequestOtpHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		a.Logger().Error("failed to load user", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil {
		WriteJsonError(w, errorUserNotFound)
		return
	}

	code := crypto.OtpCode()
	expires := db.TimeFormat(time.Now().UTC().Add(OtpValidity))
	if err := a.DbAuth().SetResetCode(user.ID, code, expires); err != nil {
		a.Logger().Error("failed to store reset code", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	mailer := a.Mailer()
	if mailer == nil {
		a.Logger().Error("no mail sender configured, reset code not delivered", "email", user.Email)
		WriteJsonError(w, errorMailDelivery)
		return
	}
	if err := mailer.SendPasswordResetCode(r.Context(), user.Email, code); err != nil {
		a.Logger().Error("failed to send reset code", "error", err, "email", user.Email)
		WriteJsonError(w, errorMailDelivery)
		return
	}

	WriteJsonOk(w, okOtpSent)
}
