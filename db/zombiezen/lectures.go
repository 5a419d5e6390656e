package zombiezen

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/learnhub/learnhub/db"
)

const lectureColumns = `id, title, video, free_preview, created, updated`

func newLectureFromStmt(stmt *sqlite.Stmt) (*db.Lecture, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	return &db.Lecture{
		ID:          stmt.GetText("id"),
		Title:       stmt.GetText("title"),
		Video:       stmt.GetText("video"),
		FreePreview: stmt.GetInt64("free_preview") != 0,
		Created:     created,
		Updated:     updated,
	}, nil
}

// CreateLecture inserts the lecture and appends it to the end of the course's
// ordered lecture list.
func (d *Db) CreateLecture(courseId string, lecture db.Lecture) (created *db.Lecture, err error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	var courseExists bool
	err = sqlitex.Execute(conn,
		`SELECT 1 FROM courses WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				courseExists = true
				return nil
			},
			Args: []interface{}{courseId},
		})
	if err != nil {
		return nil, err
	}
	if !courseExists {
		return nil, db.ErrCourseNotFound
	}

	err = sqlitex.Execute(conn,
		`INSERT INTO lectures (id, title, video, free_preview)
		VALUES (?, ?, ?, ?)
		RETURNING `+lectureColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newLectureFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				uuid.NewString(),
				lecture.Title,
				lecture.Video,
				lecture.FreePreview,
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create lecture: %w", err)
	}

	err = sqlitex.Execute(conn,
		`INSERT INTO course_lectures (course_id, lecture_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM course_lectures WHERE course_id = ?))`,
		&sqlitex.ExecOptions{
			Args: []interface{}{courseId, created.ID, courseId},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to attach lecture to course: %w", err)
	}

	return created, nil
}

// GetLectureById returns nil with nil error when no record matches.
func (d *Db) GetLectureById(id string) (*db.Lecture, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var lecture *db.Lecture
	err = sqlitex.Execute(conn,
		`SELECT `+lectureColumns+` FROM lectures WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				lecture, err = newLectureFromStmt(stmt)
				return err
			},
			Args: []interface{}{id},
		})
	if err != nil {
		return nil, err
	}

	return lecture, nil
}

// GetLecturesByCourse returns the course's lectures in course order.
func (d *Db) GetLecturesByCourse(courseId string) ([]*db.Lecture, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	lectures := []*db.Lecture{}
	err = sqlitex.Execute(conn,
		`SELECT l.id, l.title, l.video, l.free_preview, l.created, l.updated
		FROM lectures l
		JOIN course_lectures cl ON cl.lecture_id = l.id
		WHERE cl.course_id = ?
		ORDER BY cl.position`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				lecture, err := newLectureFromStmt(stmt)
				if err != nil {
					return err
				}
				lectures = append(lectures, lecture)
				return nil
			},
			Args: []interface{}{courseId},
		})
	if err != nil {
		return nil, err
	}

	return lectures, nil
}

// GetCourseIdByLecture returns the owning course id, or the empty string when
// the lecture is attached to no course.
func (d *Db) GetCourseIdByLecture(lectureId string) (string, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return "", err
	}
	defer d.pool.Put(conn)

	var courseId string
	err = sqlitex.Execute(conn,
		`SELECT course_id FROM course_lectures WHERE lecture_id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				courseId = stmt.GetText("course_id")
				return nil
			},
			Args: []interface{}{lectureId},
		})
	if err != nil {
		return "", err
	}

	return courseId, nil
}

// UpdateLecture applies the non-nil fields and returns the updated lecture.
func (d *Db) UpdateLecture(id string, fields db.LectureUpdate) (*db.Lecture, error) {
	var set []string
	var args []interface{}

	if fields.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Video != nil {
		set = append(set, "video = ?")
		args = append(args, *fields.Video)
	}
	if fields.FreePreview != nil {
		set = append(set, "free_preview = ?")
		args = append(args, *fields.FreePreview)
	}

	if len(set) == 0 {
		lecture, err := d.GetLectureById(id)
		if err != nil {
			return nil, err
		}
		if lecture == nil {
			return nil, db.ErrLectureNotFound
		}
		return lecture, nil
	}

	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	set = append(set, "updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))")
	args = append(args, id)

	var lecture *db.Lecture
	err = sqlitex.Execute(conn,
		`UPDATE lectures SET `+strings.Join(set, ", ")+` WHERE id = ? RETURNING `+lectureColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				lecture, err = newLectureFromStmt(stmt)
				return err
			},
			Args: args,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update lecture: %w", err)
	}
	if lecture == nil {
		return nil, db.ErrLectureNotFound
	}

	return lecture, nil
}

// DeleteLecture removes the lecture and every course attachment that
// references it.
func (d *Db) DeleteLecture(id string) (err error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	if err := sqlitex.Execute(conn,
		`DELETE FROM course_lectures WHERE lecture_id = ?`,
		&sqlitex.ExecOptions{Args: []interface{}{id}}); err != nil {
		return fmt.Errorf("failed to detach lecture: %w", err)
	}

	if err := sqlitex.Execute(conn,
		`DELETE FROM lectures WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []interface{}{id}}); err != nil {
		return fmt.Errorf("failed to delete lecture: %w", err)
	}

	if conn.Changes() == 0 {
		return db.ErrLectureNotFound
	}
	return nil
}
