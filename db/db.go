package db

import "errors"

var (
	// ErrConstraintUnique is returned when an insert violates a unique
	// constraint (duplicate email on users).
	ErrConstraintUnique = errors.New("unique constraint violation")
	// ErrUserNotFound is returned when a user lookup matches no record
	ErrUserNotFound = errors.New("user not found")
	// ErrCourseNotFound is returned when a course lookup matches no record
	ErrCourseNotFound = errors.New("course not found")
	// ErrLectureNotFound is returned when a lecture lookup matches no record
	ErrLectureNotFound = errors.New("lecture not found")
)

// DbAuth defines the user-facing storage operations required by the
// authentication handlers and the session middleware.
type DbAuth interface {
	// GetUserByEmail retrieves a user by email.
	// A nil user with nil error indicates no matching record.
	GetUserByEmail(email string) (*User, error)

	// GetUserById retrieves a user by id.
	// A nil user with nil error indicates no matching record.
	GetUserById(id string) (*User, error)

	// CreateUserWithPassword inserts a new local-credential user.
	// Returns ErrConstraintUnique when the email is already registered.
	CreateUserWithPassword(user User) (*User, error)

	// CreateUserWithOauth2 inserts a new federated user with no password.
	// Returns ErrConstraintUnique when the email is already registered.
	CreateUserWithOauth2(user User) (*User, error)

	// SetResetCode stores a one-time reset code with its expiry and clears
	// the verified flag.
	SetResetCode(userId, code string, expires string) error

	// MarkResetVerified clears the code and expiry and sets verified true.
	MarkResetVerified(userId string) error

	// UpdatePassword stores a new password hash, tags the record as a
	// local credential and consumes the reset-verified flag.
	UpdatePassword(userId string, newPassword string) error

	// UpdateProfile applies a partial profile update. Nil fields are left
	// untouched.
	UpdateProfile(userId string, fields ProfileUpdate) (*User, error)
}

// DbCourse defines the course storage operations.
type DbCourse interface {
	CreateCourse(course Course) (*Course, error)

	// GetCourseById returns the course with its lecture id list and
	// enrolled student id list populated. Nil with nil error when absent.
	GetCourseById(id string) (*Course, error)

	GetPublishedCourses() ([]*Course, error)
	GetCoursesByCreator(creatorId string) ([]*Course, error)

	// UpdateCourse applies a partial update. Nil fields are left
	// untouched. Returns ErrCourseNotFound when the course is absent.
	UpdateCourse(id string, fields CourseUpdate) (*Course, error)

	// DeleteCourse removes the course together with its lecture
	// attachments and enrollments. Returns ErrCourseNotFound when absent.
	DeleteCourse(id string) error

	// EnrollStudent records the user as enrolled. Enrolling twice is a
	// no-op.
	EnrollStudent(courseId, userId string) error
}

// DbLecture defines the lecture storage operations. The course side of the
// relationship is authoritative: attachments live in an ordered join table
// keyed by course, so removing a lecture removes every attachment with it.
type DbLecture interface {
	// CreateLecture inserts the lecture and appends it to the course's
	// ordered lecture list. Returns ErrCourseNotFound when the course is
	// absent.
	CreateLecture(courseId string, lecture Lecture) (*Lecture, error)

	// GetLectureById returns nil with nil error when absent.
	GetLectureById(id string) (*Lecture, error)

	GetLecturesByCourse(courseId string) ([]*Lecture, error)

	// GetCourseIdByLecture returns the id of the course the lecture is
	// attached to, or empty string when it is attached to none.
	GetCourseIdByLecture(lectureId string) (string, error)

	// UpdateLecture applies a partial update. Returns ErrLectureNotFound
	// when absent.
	UpdateLecture(id string, fields LectureUpdate) (*Lecture, error)

	// DeleteLecture removes the lecture and detaches it from every course
	// that references it. Returns ErrLectureNotFound when absent.
	DeleteLecture(id string) error
}

// DbApp combines the storage roles the application needs. The concrete
// implementation (*zombiezen.Db) must satisfy this interface.
type DbApp interface {
	DbAuth
	DbCourse
	DbLecture
}
