package core

import (
	"errors"
	"net/http"

	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/filestore"
)

// loadOwnedLecture fetches the lecture and checks the requester owns the
// course it is attached to. On failure the error response has already been
// written.
func (a *App) loadOwnedLecture(w http.ResponseWriter, lectureId string, user *db.User) (*db.Lecture, bool) {
	lecture, err := a.DbLecture().GetLectureById(lectureId)
	if err != nil {
		a.Logger().Error("failed to load lecture", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return nil, false
	}
	if lecture == nil {
		WriteJsonError(w, errorLectureNotFound)
		return nil, false
	}

	courseId, err := a.DbLecture().GetCourseIdByLecture(lectureId)
	if err != nil {
		a.Logger().Error("failed to resolve lecture course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return nil, false
	}
	if courseId == "" {
		WriteJsonError(w, errorLectureNotFound)
		return nil, false
	}

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
	return lecture, true
}

// GetLectureHandler returns one lecture
// Endpoint: GET /api/course/lecture/:lectureId
// Authenticated: Yes
func (a *App) GetLectureHandler(w http.ResponseWriter, r *http.Request) {
	lectureId := a.Params().Get(r.Context()).ByName("lectureId")
	lecture, err := a.DbLecture().GetLectureById(lectureId)
	if err != nil {
		a.Logger().Error("failed to load lecture", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}
	if lecture == nil {
		WriteJsonError(w, errorLectureNotFound)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkLecture,
			Message: "Lecture detail",
		},
		Data: newLectureData(lecture),
	}
	WriteJsonWithData(w, response)
}

// UpdateLectureHandler applies a partial update to a lecture, optionally
// replacing its video
// Endpoint: POST /api/course/editlecture/:lectureId
// Authenticated: Yes (course owner)
// Allowed Mimetype: multipart/form-data
func (a *App) UpdateLectureHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}

	lectureId := a.Params().Get(r.Context()).ByName("lectureId")
	lecture, ok := a.loadOwnedLecture(w, lectureId, user)
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

	freePreview, err := formBool(r, "free_preview")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	fields := db.LectureUpdate{
		Title:       formString(r, "title"),
		FreePreview: freePreview,
	}

	cfg := a.Config()
	oldVideo := ""
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
		fields.Video = &name
		oldVideo = lecture.Video
	}

	updated, err := a.DbLecture().UpdateLecture(lectureId, fields)
	if err != nil {
		if errors.Is(err, db.ErrLectureNotFound) {
			WriteJsonError(w, errorLectureNotFound)
			return
		}
		a.Logger().Error("failed to update lecture", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	if oldVideo != "" {
		if err := a.FileStore().Delete(oldVideo); err != nil {
			a.Logger().Warn("failed to remove replaced video", "error", err, "file", oldVideo)
		}
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkLecture,
			Message: "Lecture updated",
		},
		Data: newLectureData(updated),
	}
	WriteJsonWithData(w, response)
}

// DeleteLectureHandler removes a lecture, its course attachment and its
// stored video. The lecture must belong to the course named in the path.
// Endpoint: DELETE /api/course/deleteLecture/:courseId/:lectureId
// Authenticated: Yes (course owner)
func (a *App) DeleteLectureHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}

	params := a.Params().Get(r.Context())
	lectureId := params.ByName("lectureId")
	lecture, ok := a.loadOwnedLecture(w, lectureId, user)
	if !ok {
		return
	}

	courseId, err := a.DbLecture().GetCourseIdByLecture(lectureId)
	if err != nil {
		a.Logger().Error("failed to resolve lecture course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}
	if courseId != params.ByName("courseId") {
		WriteJsonError(w, errorLectureNotFound)
		return
	}

	if err := a.DbLecture().DeleteLecture(lectureId); err != nil {
		if errors.Is(err, db.ErrLectureNotFound) {
			WriteJsonError(w, errorLectureNotFound)
			return
		}
		a.Logger().Error("failed to delete lecture", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	if lecture.Video != "" {
		if err := a.FileStore().Delete(lecture.Video); err != nil {
			a.Logger().Warn("failed to remove lecture video", "error", err, "file", lecture.Video)
		}
	}

	WriteJsonOk(w, okLectureDeleted)
}
