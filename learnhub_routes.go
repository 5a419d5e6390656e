package learnhub

import (
	"github.com/learnhub/learnhub/core"
	r "github.com/learnhub/learnhub/router"
)

// route wires every endpoint to its handler chain. Protected endpoints get
// the auth middleware; everything else is public.
//
// The getCourses paths share one wildcard registration because the router
// rejects a static segment next to a wildcard at the same position;
// GetCoursesHandler dispatches on the literal id "published" and
// authenticates the single-course branch itself.
func route(app *core.App) {
	auth := app.RequireAuth

	app.Router().Register(r.Chains{
		// auth
		"POST /api/auth/signup":          r.NewChainFunc(app.SignupHandler),
		"POST /api/auth/login":           r.NewChainFunc(app.LoginHandler),
		"POST /api/auth/logout":          r.NewChainFunc(app.LogoutHandler),
		"POST /api/auth/sendOtp":         r.NewChainFunc(app.RequestOtpHandler),
		"POST /api/auth/verifyOtp":       r.NewChainFunc(app.VerifyOtpHandler),
		"POST /api/auth/resetPassword":   r.NewChainFunc(app.ResetPasswordHandler),
		"POST /api/auth/googleauth":      r.NewChainFunc(app.AuthWithOAuth2Handler),
		"GET /api/auth/oauth2-providers": r.NewChainFunc(app.ListOAuth2ProvidersHandler),

		// users
		"GET /api/user/current-user": r.NewChainFunc(app.CurrentUserHandler).WithMiddleware(auth),
		"POST /api/user/profile":     r.NewChainFunc(app.UpdateProfileHandler).WithMiddleware(auth),

		// courses
		"POST /api/course/create":               r.NewChainFunc(app.CreateCourseHandler).WithMiddleware(auth),
		"GET /api/course/getCourses/:courseId":  r.NewChainFunc(app.GetCoursesHandler),
		"GET /api/course/creator":               r.NewChainFunc(app.ListMyCoursesHandler).WithMiddleware(auth),
		"POST /api/course/editCourse/:courseId": r.NewChainFunc(app.UpdateCourseHandler).WithMiddleware(auth),
		"DELETE /api/course/remove/:courseId":   r.NewChainFunc(app.DeleteCourseHandler).WithMiddleware(auth),
		"POST /api/course/enroll/:courseId":     r.NewChainFunc(app.EnrollCourseHandler).WithMiddleware(auth),

		// lectures
		"POST /api/course/createlecture/:courseId":              r.NewChainFunc(app.CreateLectureHandler).WithMiddleware(auth),
		"GET /api/course/courselecture/:courseId":               r.NewChainFunc(app.ListCourseLecturesHandler).WithMiddleware(auth),
		"GET /api/course/lecture/:lectureId":                    r.NewChainFunc(app.GetLectureHandler).WithMiddleware(auth),
		"POST /api/course/editlecture/:lectureId":               r.NewChainFunc(app.UpdateLectureHandler).WithMiddleware(auth),
		"DELETE /api/course/deleteLecture/:courseId/:lectureId": r.NewChainFunc(app.DeleteLectureHandler).WithMiddleware(auth),
	})
}
