package core

import (
	"errors"
	"net/http"

	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/filestore"
)

// loadOwnedCourse fetches the course and checks the requester owns it. On
// failure the error response has already been written.
func (a *App) loadOwnedCourse(w http.ResponseWriter, courseId string, user *db.User) (*db.Course, bool) {
	course, err := a.DbCourse().GetCourseById(courseId)
	if err != nil {
		a.Logger().Error("failed to load course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return nil, false
	}
	if course == nil {
		WriteJsonError(w, errorCourseNotFound)
		return nil, false
	}
	if course.CreatorID != user.ID {
		WriteJsonError(w, errorNotOwner)
		return nil, false
	}
	return course, true
}

// UpdateCourseHandler applies a partial update to an owned course
// Endpoint: POST /api/course/editCourse/:courseId
// Authenticated: Yes (owner)
// Allowed Mimetype: multipart/form-data
//
// Absent form fields are left untouched, so clients send only what changed.
func (a *App) UpdateCourseHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}

	courseId := a.Params().Get(r.Context()).ByName("courseId")
	course, ok := a.loadOwnedCourse(w, courseId, user)
	if !ok {
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

	if level := formString(r, "level"); level != nil {
		if err := ValidateLevel(*level); err != nil {
			WriteJsonError(w, errorInvalidRequest)
			return
		}
	}

	price, err := formFloat(r, "price")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	published, err := formBool(r, "published")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	requirements, err := formStringList(r, "requirements")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	objectives, err := formStringList(r, "objectives")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	fields := db.CourseUpdate{
		Title:        formString(r, "title"),
		Subtitle:     formString(r, "subtitle"),
		Description:  formString(r, "description"),
		Category:     formString(r, "category"),
		Level:        formString(r, "level"),
		Price:        price,
		Published:    published,
		Requirements: requirements,
		Objectives:   objectives,
	}

	cfg := a.Config()
	oldThumbnail := ""
	if file, header, err := r.FormFile("thumbnail"); err == nil {
		defer file.Close()
		name, err := a.FileStore().Save(file, header.Filename, cfg.Uploads.MaxImageBytes)
		if err != nil {
			if errors.Is(err, filestore.ErrTooLarge) {
				WriteJsonError(w, errorFileTooLarge)
				return
			}
			a.Logger().Error("failed to store thumbnail", "error", err)
			WriteJsonError(w, errorCourseDatabaseError)
			return
		}
		fields.Thumbnail = &name
		oldThumbnail = course.Thumbnail
	}

	updated, err := a.DbCourse().UpdateCourse(courseId, fields)
	if err != nil {
		if errors.Is(err, db.ErrCourseNotFound) {
			WriteJsonError(w, errorCourseNotFound)
			return
		}
		a.Logger().Error("failed to update course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	if oldThumbnail != "" {
		if err := a.FileStore().Delete(oldThumbnail); err != nil {
			a.Logger().Warn("failed to remove replaced thumbnail", "error", err, "file", oldThumbnail)
		}
	}

	a.invalidatePublishedCourses()

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkCourse,
			Message: "Course updated",
		},
		Data: newCourseData(updated),
	}
	WriteJsonWithData(w, response)
}
