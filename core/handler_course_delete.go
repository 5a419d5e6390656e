package core

import (
	"errors"
	"net/http"

	"github.com/learnhub/learnhub/db"
)

// DeleteCourseHandler removes an owned course together with its lectures,
// enrollments and stored files
// Endpoint: DELETE /api/course/remove/:courseId
// Authenticated: Yes (owner)
func (a *App) DeleteCourseHandler(w http.ResponseWriter, r *http.Request) {
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

	// Collect lecture records before the join rows disappear.
	lectures, err := a.DbLecture().GetLecturesByCourse(courseId)
	if err != nil {
		a.Logger().Error("failed to load course lectures", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	if err := a.DbCourse().DeleteCourse(courseId); err != nil {
		if errors.Is(err, db.ErrCourseNotFound) {
			WriteJsonError(w, errorCourseNotFound)
			return
		}
		a.Logger().Error("failed to delete course", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	for _, lecture := range lectures {
		if err := a.DbLecture().DeleteLecture(lecture.ID); err != nil {
			a.Logger().Warn("failed to delete course lecture", "error", err, "lecture", lecture.ID)
			continue
		}
		if lecture.Video != "" {
			if err := a.FileStore().Delete(lecture.Video); err != nil {
				a.Logger().Warn("failed to remove lecture video", "error", err, "file", lecture.Video)
			}
		}
	}
	if course.Thumbnail != "" {
		if err := a.FileStore().Delete(course.Thumbnail); err != nil {
			a.Logger().Warn("failed to remove course thumbnail", "error", err, "file", course.Thumbnail)
		}
	}

	a.invalidatePublishedCourses()

	WriteJsonOk(w, okCourseDeleted)
}
