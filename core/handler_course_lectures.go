package core

import (
	"net/http"
)

// ListCourseLecturesHandler returns a course's lectures in their stored order
// Endpoint: GET /api/course/courselecture/:courseId
// Authenticated: Yes
func (a *App) ListCourseLecturesHandler(w http.ResponseWriter, r *http.Request) {
	courseId := a.Params().Get(r.Context()).ByName("courseId")
	if courseId == "" {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	course, err := a.DbCourse().GetCourseById(courseId)
	if err != nil {
		a.Logger().Error("failed to load course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}
	if course == nil {
		WriteJsonError(w, errorCourseNotFound)
		return
	}

	lectures, err := a.DbLecture().GetLecturesByCourse(courseId)
	if err != nil {
		a.Logger().Error("failed to load course lectures", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkLectureList,
			Message: "Course lectures",
		},
		Data: newLectureList(lectures),
	}
	WriteJsonWithData(w, response)
}
