package core

import (
	"net/http"
)

// EnrollCourseHandler records the authenticated user as enrolled
// Endpoint: POST /api/course/enroll/:courseId
// Authenticated: Yes
//
// Enrolling in a course twice succeeds and changes nothing.
func (a *App) EnrollCourseHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}

	courseId := a.Params().Get(r.Context()).ByName("courseId")
	course, err := a.DbCourse().GetCourseById(courseId)
	if err != nil {
		a.Logger().Error("failed to load course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}
	if course == nil || !course.Published {
		WriteJsonError(w, errorCourseNotFound)
		return
	}

	if err := a.DbCourse().EnrollStudent(courseId, user.ID); err != nil {
		a.Logger().Error("failed to enroll student", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	WriteJsonOk(w, okEnrolled)
}
