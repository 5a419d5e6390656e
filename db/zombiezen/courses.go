package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/learnhub/learnhub/db"
)

const courseColumns = `id, title, subtitle, description, category, level, price, rating,
	thumbnail, published, requirements, objectives, creator_id, created, updated`

// String lists are stored as JSON text columns.
func encodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		// A []string cannot fail to marshal.
		panic(err)
	}
	return string(encoded)
}

func decodeStringList(text string) ([]string, error) {
	if text == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func newCourseFromStmt(stmt *sqlite.Stmt) (*db.Course, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	requirements, err := decodeStringList(stmt.GetText("requirements"))
	if err != nil {
		return nil, fmt.Errorf("error parsing requirements: %w", err)
	}

	objectives, err := decodeStringList(stmt.GetText("objectives"))
	if err != nil {
		return nil, fmt.Errorf("error parsing objectives: %w", err)
	}

	return &db.Course{
		ID:           stmt.GetText("id"),
		Title:        stmt.GetText("title"),
		Subtitle:     stmt.GetText("subtitle"),
		Description:  stmt.GetText("description"),
		Category:     stmt.GetText("category"),
		Level:        stmt.GetText("level"),
		Price:        stmt.GetFloat("price"),
		Rating:       stmt.GetFloat("rating"),
		Thumbnail:    stmt.GetText("thumbnail"),
		Published:    stmt.GetInt64("published") != 0,
		Requirements: requirements,
		Objectives:   objectives,
		CreatorID:    stmt.GetText("creator_id"),
		Created:      created,
		Updated:      updated,
	}, nil
}

// lectureIDsForCourse returns the attached lecture ids in course order.
func lectureIDsForCourse(conn *sqlite.Conn, courseId string) ([]string, error) {
	ids := []string{}
	err := sqlitex.Execute(conn,
		`SELECT lecture_id FROM course_lectures WHERE course_id = ? ORDER BY position`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				ids = append(ids, stmt.GetText("lecture_id"))
				return nil
			},
			Args: []interface{}{courseId},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load course lecture ids: %w", err)
	}
	return ids, nil
}

func enrolledIDsForCourse(conn *sqlite.Conn, courseId string) ([]string, error) {
	ids := []string{}
	err := sqlitex.Execute(conn,
		`SELECT user_id FROM enrollments WHERE course_id = ? ORDER BY created`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				ids = append(ids, stmt.GetText("user_id"))
				return nil
			},
			Args: []interface{}{courseId},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load course enrollments: %w", err)
	}
	return ids, nil
}

func attachCourseLists(conn *sqlite.Conn, course *db.Course) error {
	lectureIDs, err := lectureIDsForCourse(conn, course.ID)
	if err != nil {
		return err
	}
	enrolledIDs, err := enrolledIDsForCourse(conn, course.ID)
	if err != nil {
		return err
	}
	course.LectureIDs = lectureIDs
	course.EnrolledIDs = enrolledIDs
	return nil
}

func (d *Db) CreateCourse(course db.Course) (*db.Course, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	level := course.Level
	if level == "" {
		level = db.LevelBeginner
	}

	var created *db.Course
	err = sqlitex.Execute(conn,
		`INSERT INTO courses (id, title, subtitle, description, category, level, price,
			thumbnail, published, requirements, objectives, creator_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+courseColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newCourseFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				uuid.NewString(),
				course.Title,
				course.Subtitle,
				course.Description,
				course.Category,
				level,
				course.Price,
				course.Thumbnail,
				course.Published,
				encodeStringList(course.Requirements),
				encodeStringList(course.Objectives),
				course.CreatorID,
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	created.LectureIDs = []string{}
	created.EnrolledIDs = []string{}
	return created, nil
}

// GetCourseById returns the course with its lecture and enrollment id lists
// populated. A nil course with nil error indicates no matching record.
func (d *Db) GetCourseById(id string) (*db.Course, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var course *db.Course
	err = sqlitex.Execute(conn,
		`SELECT `+courseColumns+` FROM courses WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				course, err = newCourseFromStmt(stmt)
				return err
			},
			Args: []interface{}{id},
		})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	if err := attachCourseLists(conn, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (d *Db) GetPublishedCourses() ([]*db.Course, error) {
	return d.getCourses(`SELECT `+courseColumns+` FROM courses WHERE published = 1 ORDER BY created DESC`, nil)
}

func (d *Db) GetCoursesByCreator(creatorId string) ([]*db.Course, error) {
	return d.getCourses(
		`SELECT `+courseColumns+` FROM courses WHERE creator_id = ? ORDER BY created DESC`,
		[]interface{}{creatorId})
}

func (d *Db) getCourses(query string, args []interface{}) ([]*db.Course, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	courses := []*db.Course{}
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			course, err := newCourseFromStmt(stmt)
			if err != nil {
				return err
			}
			courses = append(courses, course)
			return nil
		},
		Args: args,
	})
	if err != nil {
		return nil, err
	}

	for _, course := range courses {
		if err := attachCourseLists(conn, course); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

// UpdateCourse applies the non-nil fields and returns the updated course.
func (d *Db) UpdateCourse(id string, fields db.CourseUpdate) (*db.Course, error) {
	var set []string
	var args []interface{}

	if fields.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Subtitle != nil {
		set = append(set, "subtitle = ?")
		args = append(args, *fields.Subtitle)
	}
	if fields.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *fields.Description)
	}
	if fields.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *fields.Category)
	}
	if fields.Level != nil {
		set = append(set, "level = ?")
		args = append(args, *fields.Level)
	}
	if fields.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *fields.Price)
	}
	if fields.Thumbnail != nil {
		set = append(set, "thumbnail = ?")
		args = append(args, *fields.Thumbnail)
	}
	if fields.Published != nil {
		set = append(set, "published = ?")
		args = append(args, *fields.Published)
	}
	if fields.Requirements != nil {
		set = append(set, "requirements = ?")
		args = append(args, encodeStringList(*fields.Requirements))
	}
	if fields.Objectives != nil {
		set = append(set, "objectives = ?")
		args = append(args, encodeStringList(*fields.Objectives))
	}

	if len(set) == 0 {
		course, err := d.GetCourseById(id)
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, db.ErrCourseNotFound
		}
		return course, nil
	}

	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	set = append(set, "updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))")
	args = append(args, id)

	var course *db.Course
	err = sqlitex.Execute(conn,
		`UPDATE courses SET `+strings.Join(set, ", ")+` WHERE id = ? RETURNING `+courseColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				course, err = newCourseFromStmt(stmt)
				return err
			},
			Args: args,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	if course == nil {
		return nil, db.ErrCourseNotFound
	}

	if err := attachCourseLists(conn, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes the course with its lecture attachments and
// enrollments. Lectures themselves survive; they may be attached elsewhere.
func (d *Db) DeleteCourse(id string) (err error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	if err := sqlitex.Execute(conn,
		`DELETE FROM course_lectures WHERE course_id = ?`,
		&sqlitex.ExecOptions{Args: []interface{}{id}}); err != nil {
		return fmt.Errorf("failed to delete course lectures: %w", err)
	}

	if err := sqlitex.Execute(conn,
		`DELETE FROM enrollments WHERE course_id = ?`,
		&sqlitex.ExecOptions{Args: []interface{}{id}}); err != nil {
		return fmt.Errorf("failed to delete course enrollments: %w", err)
	}

	if err := sqlitex.Execute(conn,
		`DELETE FROM courses WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []interface{}{id}}); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if conn.Changes() == 0 {
		return db.ErrCourseNotFound
	}
	return nil
}

// EnrollStudent records the enrollment. Enrolling twice is a no-op.
func (d *Db) EnrollStudent(courseId, userId string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT OR IGNORE INTO enrollments (course_id, user_id) VALUES (?, ?)`,
		&sqlitex.ExecOptions{
			Args: []interface{}{courseId, userId},
		})
	if err != nil {
		return fmt.Errorf("failed to enroll student: %w", err)
	}
	return nil
}
