package core

import (
	"errors"
	"net/http"
	"strings"

	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/filestore"
)

// LectureDetailData bundles a lecture with the course it belongs to.
type LectureDetailData struct {
	Lecture LectureData `json:"lecture"`
	Course  CourseData  `json:"course"`
}

// CreateLectureHandler uploads a lecture video and appends the lecture to
// the course's ordered list
// Endpoint: POST /api/course/createlecture/:courseId
// Authenticated: Yes (owner)
// Allowed Mimetype: multipart/form-data
func (a *App) CreateLectureHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}

	courseId := a.Params().Get(r.Context()).ByName("courseId")
	if _, ok := a.loadOwnedCourse(w, courseId, user); !ok {
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
	if title == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	freePreview, err := formBool(r, "free_preview")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	lecture := db.Lecture{
		Title: title,
	}
	if freePreview != nil {
		lecture.FreePreview = *freePreview
	}

	cfg := a.Config()
	if file, header, err := r.FormFile("video"); err == nil {
		defer file.Close()
		name, err := a.FileStore().Save(file, header.Filename, cfg.Uploads.MaxVideoBytes)
		if err != nil {
			if errors.Is(err, filestore.ErrTooLarge) {
				WriteJsonError(w, errorFileTooLarge)
				return
			}
			a.Logger().Error("failed to store lecture video", "error", err)
			WriteJsonError(w, errorCourseDatabaseError)
			return
		}
		lecture.Video = name
	}

	created, err := a.DbLecture().CreateLecture(courseId, lecture)
	if err != nil {
		if errors.Is(err, db.ErrCourseNotFound) {
			WriteJsonError(w, errorCourseNotFound)
			return
		}
		a.Logger().Error("failed to create lecture", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	// Reload so the response carries the course with the new lecture id
	// appended.
	course, err := a.DbCourse().GetCourseById(courseId)
	if err != nil || course == nil {
		a.Logger().Error("failed to reload course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusCreated,
			Code:    CodeOkLecture,
			Message: "Lecture created",
		},
		Data: LectureDetailData{
			Lecture: newLectureData(created),
			Course:  newCourseData(course),
		},
	}
	WriteJsonWithData(w, response)
}
