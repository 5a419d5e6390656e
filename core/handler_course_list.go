package core

import (
	"net/http"

	"github.com/learnhub/learnhub/db"
)

// publishedCoursesCacheKey is the single cache entry for the public catalog.
const publishedCoursesCacheKey = "courses:published"

func (a *App) invalidatePublishedCourses() {
	if c := a.CourseCache(); c != nil {
		c.Del(publishedCoursesCacheKey)
	}
}

// ListPublishedCoursesHandler returns the public course catalog
// Endpoint: GET /api/course/getCourses/published
// Authenticated: No
//
// The catalog is served from cache; every course mutation drops the entry.
func (a *App) ListPublishedCoursesHandler(w http.ResponseWriter, r *http.Request) {
	var courses []*db.Course
	cached := false
	if c := a.CourseCache(); c != nil {
		courses, cached = c.Get(publishedCoursesCacheKey)
	}
	if !cached {
		var err error
		courses, err = a.DbCourse().GetPublishedCourses()
		if err != nil {
			a.Logger().Error("failed to list published courses", "error", err)
			WriteJsonError(w, errorCourseDatabaseError)
			return
		}
		if c := a.CourseCache(); c != nil {
			cfg := a.Config()
			c.SetWithTTL(publishedCoursesCacheKey, courses, 1, cfg.Cache.PublishedCoursesTTL.Duration)
		}
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkCourseList,
			Message: "Published courses",
		},
		Data: newCourseList(courses),
	}
	WriteJsonWithData(w, response)
}

// ListMyCoursesHandler returns every course the authenticated educator owns,
// drafts included
// Endpoint: GET /api/course/creator
// Authenticated: Yes (educator)
func (a *App) ListMyCoursesHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteJsonError(w, errorNoAuthToken)
		return
	}
	if user.Role != db.RoleEducator {
		WriteJsonError(w, errorEducatorOnly)
		return
	}

	courses, err := a.DbCourse().GetCoursesByCreator(user.ID)
	if err != nil {
		a.Logger().Error("failed to list courses by creator", "error", err)
		WriteJsonError(w, errorCourseDatabaseError)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkCourseList,
			Message: "Your courses",
		},
		Data: newCourseList(courses),
	}
	WriteJsonWithData(w, response)
}
