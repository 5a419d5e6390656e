package zombiezen

import (
	"errors"
	"reflect"
	"testing"

	"github.com/learnhub/learnhub/db"
)

func createTestEducator(t *testing.T, testDB *Db, email string) *db.User {
	t.Helper()
	user, err := testDB.CreateUserWithPassword(db.User{
		Email:    email,
		Password: "hash",
		Role:     db.RoleEducator,
	})
	if err != nil {
		t.Fatalf("failed to create educator: %v", err)
	}
	return user
}

func TestCourseLifecycle(t *testing.T) {
	testDB := newTestDB(t)
	educator := createTestEducator(t, testDB, "educator@example.com")

	var course *db.Course
	var err error

	t.Run("Create", func(t *testing.T) {
		course, err = testDB.CreateCourse(db.Course{
			Title:        "Go from Scratch",
			Subtitle:     "A practical introduction",
			Category:     "Programming",
			Price:        49.99,
			Requirements: []string{"A laptop"},
			Objectives:   []string{"Write Go programs"},
			CreatorID:    educator.ID,
		})
		if err != nil {
			t.Fatalf("CreateCourse failed: %v", err)
		}
		if course.ID == "" {
			t.Fatal("expected course to have an ID")
		}
		if course.Level != db.LevelBeginner {
			t.Errorf("expected default level %q, got %q", db.LevelBeginner, course.Level)
		}
		if course.Published {
			t.Error("expected new course to be unpublished")
		}
		if len(course.LectureIDs) != 0 || len(course.EnrolledIDs) != 0 {
			t.Error("expected new course to have empty lecture and enrollment lists")
		}
	})

	t.Run("GetById", func(t *testing.T) {
		fetched, err := testDB.GetCourseById(course.ID)
		if err != nil {
			t.Fatalf("GetCourseById failed: %v", err)
		}
		if fetched == nil {
			t.Fatal("expected to fetch a course, but got nil")
		}
		if !reflect.DeepEqual(fetched.Requirements, []string{"A laptop"}) {
			t.Errorf("requirements = %v, want [A laptop]", fetched.Requirements)
		}
		if fetched.Price != 49.99 {
			t.Errorf("price = %v, want 49.99", fetched.Price)
		}
	})

	t.Run("GetByIdMissing", func(t *testing.T) {
		fetched, err := testDB.GetCourseById("no-such-id")
		if err != nil {
			t.Fatalf("GetCourseById failed: %v", err)
		}
		if fetched != nil {
			t.Errorf("expected nil course, got %+v", fetched)
		}
	})

	t.Run("PublishedListExcludesDrafts", func(t *testing.T) {
		published, err := testDB.GetPublishedCourses()
		if err != nil {
			t.Fatalf("GetPublishedCourses failed: %v", err)
		}
		if len(published) != 0 {
			t.Errorf("expected no published courses, got %d", len(published))
		}

		isPublished := true
		if _, err := testDB.UpdateCourse(course.ID, db.CourseUpdate{Published: &isPublished}); err != nil {
			t.Fatalf("UpdateCourse failed: %v", err)
		}

		published, err = testDB.GetPublishedCourses()
		if err != nil {
			t.Fatalf("GetPublishedCourses failed: %v", err)
		}
		if len(published) != 1 || published[0].ID != course.ID {
			t.Errorf("expected published list [%s], got %+v", course.ID, published)
		}
	})

	t.Run("GetByCreator", func(t *testing.T) {
		other := createTestEducator(t, testDB, "other@example.com")
		if _, err := testDB.CreateCourse(db.Course{Title: "Other Course", CreatorID: other.ID}); err != nil {
			t.Fatalf("CreateCourse failed: %v", err)
		}

		courses, err := testDB.GetCoursesByCreator(educator.ID)
		if err != nil {
			t.Fatalf("GetCoursesByCreator failed: %v", err)
		}
		if len(courses) != 1 || courses[0].ID != course.ID {
			t.Errorf("expected creator list [%s], got %+v", course.ID, courses)
		}
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		price := 59.99
		level := db.LevelAdvanced
		updated, err := testDB.UpdateCourse(course.ID, db.CourseUpdate{
			Price: &price,
			Level: &level,
		})
		if err != nil {
			t.Fatalf("UpdateCourse failed: %v", err)
		}
		if updated.Price != price {
			t.Errorf("price = %v, want %v", updated.Price, price)
		}
		if updated.Level != level {
			t.Errorf("level = %q, want %q", updated.Level, level)
		}
		// Untouched fields survive.
		if updated.Title != "Go from Scratch" {
			t.Errorf("title changed unexpectedly to %q", updated.Title)
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		price := 1.0
		_, err := testDB.UpdateCourse("no-such-id", db.CourseUpdate{Price: &price})
		if !errors.Is(err, db.ErrCourseNotFound) {
			t.Errorf("expected ErrCourseNotFound, got %v", err)
		}
	})

	t.Run("Enroll", func(t *testing.T) {
		student, err := testDB.CreateUserWithPassword(db.User{
			Email:    "student@example.com",
			Password: "hash",
		})
		if err != nil {
			t.Fatalf("failed to create student: %v", err)
		}

		if err := testDB.EnrollStudent(course.ID, student.ID); err != nil {
			t.Fatalf("EnrollStudent failed: %v", err)
		}
		// Enrolling twice is a no-op.
		if err := testDB.EnrollStudent(course.ID, student.ID); err != nil {
			t.Fatalf("second EnrollStudent failed: %v", err)
		}

		fetched, err := testDB.GetCourseById(course.ID)
		if err != nil {
			t.Fatalf("GetCourseById failed: %v", err)
		}
		if !reflect.DeepEqual(fetched.EnrolledIDs, []string{student.ID}) {
			t.Errorf("enrolled ids = %v, want [%s]", fetched.EnrolledIDs, student.ID)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := testDB.DeleteCourse(course.ID); err != nil {
			t.Fatalf("DeleteCourse failed: %v", err)
		}

		fetched, err := testDB.GetCourseById(course.ID)
		if err != nil {
			t.Fatalf("GetCourseById failed: %v", err)
		}
		if fetched != nil {
			t.Errorf("expected course to be gone, got %+v", fetched)
		}

		if err := testDB.DeleteCourse(course.ID); !errors.Is(err, db.ErrCourseNotFound) {
			t.Errorf("expected ErrCourseNotFound on second delete, got %v", err)
		}
	})
}
