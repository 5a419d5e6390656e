package core

import (
	"errors"
	"net/http"

	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/filestore"
)

// multipartParseMemory caps how much of a multipart body is buffered in
// memory; larger file parts spill to temp files.
const multipartParseMemory = 10 << 20

// CurrentUserHandler returns the authenticated user's record
// Endpoint: GET /api/user/current-user
// Authenticated: Yes
func (a *App) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkUser,
			Message: "User record",
		},
		Data: newAuthRecord(user),
	}
	WriteJsonWithData(w, response)
}

// UpdateProfileHandler applies a partial profile update, optionally
// replacing the profile photo
// Endpoint: POST /api/user/profile
// Authenticated: Yes
// Allowed Mimetype: multipart/form-data
func (a *App) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}

	if resp, err := a.Validator().ContentType(r, MimeTypeMultipart); err != nil {
		WriteJsonError(w, resp)
		return
	}

	if err := r.ParseMultipartForm(multipartParseMemory); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	fields := db.ProfileUpdate{
		Name:        formString(r, "name"),
		Description: formString(r, "description"),
	}

	cfg := a.Config()
	oldPhoto := ""
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		name, err := a.FileStore().Save(file, header.Filename, cfg.Uploads.MaxImageBytes)
		if err != nil {
			if errors.Is(err, filestore.ErrTooLarge) {
				WriteJsonError(w, errorFileTooLarge)
				return
			}
			a.Logger().Error("failed to store profile photo", "error", err)
			WriteJsonError(w, errorAuthDatabaseError)
			return
		}
		fields.Photo = &name
		oldPhoto = user.Photo
	}

	updated, err := a.DbAuth().UpdateProfile(user.ID, fields)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			WriteJsonError(w, errorUserNotFound)
			return
		}
		a.Logger().Error("failed to update profile", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	// The replaced photo is only removed once the record points at the new
	// one.
	if oldPhoto != "" {
		if err := a.FileStore().Delete(oldPhoto); err != nil {
			a.Logger().Warn("failed to remove replaced photo", "error", err, "file", oldPhoto)
		}
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkUser,
			Message: "Profile updated",
		},
		Data: newAuthRecord(updated),
	}
	WriteJsonWithData(w, response)
}
