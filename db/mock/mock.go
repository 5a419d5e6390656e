package mock

import (
	"github.com/learnhub/learnhub/db"
)

// Compile-time check to ensure Db implements the DbApp interface
var _ db.DbApp = (*Db)(nil)

// Db implements db.DbApp for testing purposes.
// Use function fields to allow overriding behavior in specific tests.
type Db struct {
	// --- DbAuth ---
	GetUserByEmailFunc         func(email string) (*db.User, error)
	GetUserByIdFunc            func(id string) (*db.User, error)
	CreateUserWithPasswordFunc func(user db.User) (*db.User, error)
	CreateUserWithOauth2Func   func(user db.User) (*db.User, error)
	SetResetCodeFunc           func(userId, code string, expires string) error
	MarkResetVerifiedFunc      func(userId string) error
	UpdatePasswordFunc         func(userId string, newPassword string) error
	UpdateProfileFunc          func(userId string, fields db.ProfileUpdate) (*db.User, error)

	// --- DbCourse ---
	CreateCourseFunc        func(course db.Course) (*db.Course, error)
	GetCourseByIdFunc       func(id string) (*db.Course, error)
	GetPublishedCoursesFunc func() ([]*db.Course, error)
	GetCoursesByCreatorFunc func(creatorId string) ([]*db.Course, error)
	UpdateCourseFunc        func(id string, fields db.CourseUpdate) (*db.Course, error)
	DeleteCourseFunc        func(id string) error
	EnrollStudentFunc       func(courseId, userId string) error

	// --- DbLecture ---
	CreateLectureFunc        func(courseId string, lecture db.Lecture) (*db.Lecture, error)
	GetLectureByIdFunc       func(id string) (*db.Lecture, error)
	GetLecturesByCourseFunc  func(courseId string) ([]*db.Lecture, error)
	GetCourseIdByLectureFunc func(lectureId string) (string, error)
	UpdateLectureFunc        func(id string, fields db.LectureUpdate) (*db.Lecture, error)
	DeleteLectureFunc        func(id string) error
}

// --- DbAuth ---

func (m *Db) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetUserById(id string) (*db.User, error) {
	if m.GetUserByIdFunc != nil {
		return m.GetUserByIdFunc(id)
	}
	return nil, nil // Default: not found
}

func (m *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	if m.CreateUserWithPasswordFunc != nil {
		return m.CreateUserWithPasswordFunc(user)
	}
	user.ID = "mock-pw-user-id"
	return &user, nil
}

func (m *Db) CreateUserWithOauth2(user db.User) (*db.User, error) {
	if m.CreateUserWithOauth2Func != nil {
		return m.CreateUserWithOauth2Func(user)
	}
	user.ID = "mock-oauth-user-id"
	return &user, nil
}

func (m *Db) SetResetCode(userId, code string, expires string) error {
	if m.SetResetCodeFunc != nil {
		return m.SetResetCodeFunc(userId, code, expires)
	}
	return nil
}

func (m *Db) MarkResetVerified(userId string) error {
	if m.MarkResetVerifiedFunc != nil {
		return m.MarkResetVerifiedFunc(userId)
	}
	return nil
}

func (m *Db) UpdatePassword(userId string, newPassword string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(userId, newPassword)
	}
	return nil
}

func (m *Db) UpdateProfile(userId string, fields db.ProfileUpdate) (*db.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(userId, fields)
	}
	return &db.User{ID: userId}, nil
}

// --- DbCourse ---

func (m *Db) CreateCourse(course db.Course) (*db.Course, error) {
	if m.CreateCourseFunc != nil {
		return m.CreateCourseFunc(course)
	}
	course.ID = "mock-course-id"
	return &course, nil
}

func (m *Db) GetCourseById(id string) (*db.Course, error) {
	if m.GetCourseByIdFunc != nil {
		return m.GetCourseByIdFunc(id)
	}
	return nil, nil
}

func (m *Db) GetPublishedCourses() ([]*db.Course, error) {
	if m.GetPublishedCoursesFunc != nil {
		return m.GetPublishedCoursesFunc()
	}
	return []*db.Course{}, nil
}

func (m *Db) GetCoursesByCreator(creatorId string) ([]*db.Course, error) {
	if m.GetCoursesByCreatorFunc != nil {
		return m.GetCoursesByCreatorFunc(creatorId)
	}
	return []*db.Course{}, nil
}

func (m *Db) UpdateCourse(id string, fields db.CourseUpdate) (*db.Course, error) {
	if m.UpdateCourseFunc != nil {
		return m.UpdateCourseFunc(id, fields)
	}
	return &db.Course{ID: id}, nil
}

func (m *Db) DeleteCourse(id string) error {
	if m.DeleteCourseFunc != nil {
		return m.DeleteCourseFunc(id)
	}
	return nil
}

func (m *Db) EnrollStudent(courseId, userId string) error {
	if m.EnrollStudentFunc != nil {
		return m.EnrollStudentFunc(courseId, userId)
	}
	return nil
}

// --- DbLecture ---

func (m *Db) CreateLecture(courseId string, lecture db.Lecture) (*db.Lecture, error) {
	if m.CreateLectureFunc != nil {
		return m.CreateLectureFunc(courseId, lecture)
	}
	lecture.ID = "mock-lecture-id"
	return &lecture, nil
}

func (m *Db) GetLectureById(id string) (*db.Lecture, error) {
	if m.GetLectureByIdFunc != nil {
		return m.GetLectureByIdFunc(id)
	}
	return nil, nil
}

func (m *Db) GetLecturesByCourse(courseId string) ([]*db.Lecture, error) {
	if m.GetLecturesByCourseFunc != nil {
		return m.GetLecturesByCourseFunc(courseId)
	}
	return []*db.Lecture{}, nil
}

func (m *Db) GetCourseIdByLecture(lectureId string) (string, error) {
	if m.GetCourseIdByLectureFunc != nil {
		return m.GetCourseIdByLectureFunc(lectureId)
	}
	return "", nil
}

func (m *Db) UpdateLecture(id string, fields db.LectureUpdate) (*db.Lecture, error) {
	if m.UpdateLectureFunc != nil {
		return m.UpdateLectureFunc(id, fields)
	}
	return &db.Lecture{ID: id}, nil
}

func (m *Db) DeleteLecture(id string) error {
	if m.DeleteLectureFunc != nil {
		return m.DeleteLectureFunc(id)
	}
	return nil
}
