package core

import (
	"errors"
	"net/http"
	"strings"

	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/filestore"
)

// CreateCourseHandler creates a course owned by the authenticated educator
// Endpoint: POST /api/course/create
// Authenticated: Yes (educator)
// Allowed Mimetype: multipart/form-data
func (a *App) CreateCourseHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}
	if user.Role != db.RoleEducator {
		WriteJsonError(w, errorEducatorOnly)
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

	title := strings.TrimSpace(r.FormValue("title"))
	category := strings.TrimSpace(r.FormValue("category"))
	if title == "" || category == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	level := r.FormValue("level")
	if err := ValidateLevel(level); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
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

	course := db.Course{
		Title:       title,
		Subtitle:    r.FormValue("subtitle"),
		Description: r.FormValue("description"),
		Category:    category,
		Level:       level,
		CreatorID:   user.ID,
	}
	if price != nil {
		course.Price = *price
	}
	if published != nil {
		course.Published = *published
	}
	if requirements != nil {
		course.Requirements = *requirements
	}
	if objectives != nil {
		course.Objectives = *objectives
	}

	cfg := a.Config()
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
		course.Thumbnail = name
	}

	created, err := a.DbCourse().CreateCourse(course)
	if err != nil {
		a.Logger().Error("failed to create course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	a.invalidatePublishedCourses()

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusCreated,
			Code:    CodeOkCourse,
			Message: "Course created",
		},
		Data: newCourseData(created),
	}
	WriteJsonWithData(w, response)
}
