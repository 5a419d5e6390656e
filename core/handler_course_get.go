package core

import (
	"net/http"
)

// CourseDetailData bundles a course with its lectures in order.
type CourseDetailData struct {
	Course   CourseData    `json:"course"`
	Lectures []LectureData `json:"lectures"`
}

// GetCoursesHandler serves the shared getCourses wildcard. The literal id
// "published" selects the public catalog; any other id is the authenticated
// single course view. The split cannot happen in the router because a static
// segment and a wildcard cannot share a position.
// Endpoint: GET /api/course/getCourses/:courseId
func (a *App) GetCoursesHandler(w http.ResponseWriter, r *http.Request) {
	if a.Params().Get(r.Context()).ByName("courseId") == "published" {
		a.ListPublishedCoursesHandler(w, r)
		return
	}

	user, err, resp := a.Auth().Authenticate(r)
	if err != nil {
		WriteJsonError(w, resp)
		return
	}
	a.GetCourseHandler(w, requestWithUser(r, user))
}

// GetCourseHandler returns one course with its ordered lectures
// Endpoint: GET /api/course/getCourses/:courseId
// Authenticated: Yes
func (a *App) GetCourseHandler(w http.ResponseWriter, r *http.Request) {
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
			Code:    CodeOkCourse,
			Message: "Course detail",
		},
		Data: CourseDetailData{
			Course:   newCourseData(course),
			Lectures: newLectureList(lectures),
		},
	}
	WriteJsonWithData(w, response)
}
