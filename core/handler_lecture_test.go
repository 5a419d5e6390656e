package core

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/db/mock"
	"github.com/learnhub/learnhub/filestore"
	"github.com/learnhub/learnhub/router"
)

func TestCreateLectureHandler(t *testing.T) {
	owned := &db.Course{ID: "course123", CreatorID: testEducator.ID}

	t.Run("owner uploads a lecture", func(t *testing.T) {
		var created db.Lecture
		dbm := &mock.Db{
			GetCourseByIdFunc: func(id string) (*db.Course, error) {
				course := *owned
				course.LectureIDs = []string{"lec123"}
				return &course, nil
			},
			CreateLectureFunc: func(courseId string, lecture db.Lecture) (*db.Lecture, error) {
				created = lecture
				stored := lecture
				stored.ID = "lec123"
				return &stored, nil
			},
		}
		app := newCourseApp(t, dbm, router.Params{{Key: "courseId", Value: "course123"}})

		req := multipartRequest(t, "POST", "/api/course/createlecture/course123", map[string]string{
			"title":        "Intro",
			"free_preview": "true",
		}, map[string][]byte{"video": []byte("mp4-bytes")})

		rr := httptest.NewRecorder()
		app.CreateLectureHandler(rr, requestWithTestUser(req, testEducator))

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
		}
		if created.Title != "Intro" {
			t.Errorf("unexpected title %q", created.Title)
		}
		if !created.FreePreview {
			t.Error("expected free preview lecture")
		}
		if created.Video == "" {
			t.Error("expected stored video name")
		}

		var body map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		data := body["data"].(map[string]interface{})
		course := data["course"].(map[string]interface{})
		lectureIDs := course["lecture_ids"].([]interface{})
		if len(lectureIDs) != 1 || lectureIDs[0] != "lec123" {
			t.Errorf("expected lecture appended to course, got %v", lectureIDs)
		}
	})

	t.Run("oversized video is rejected", func(t *testing.T) {
		dbm := &mock.Db{
			GetCourseByIdFunc: func(id string) (*db.Course, error) { return owned, nil },
		}
		app := newCourseApp(t, dbm, router.Params{{Key: "courseId", Value: "course123"}})
		app.store = &MockFileStore{
			SaveFunc: func(r io.Reader, originalName string, maxBytes int64) (string, error) {
				return "", filestore.ErrTooLarge
			},
		}

		req := multipartRequest(t, "POST", "/api/course/createlecture/course123", map[string]string{
			"title": "Intro",
		}, map[string][]byte{"video": []byte("giant")})

		rr := httptest.NewRecorder()
		app.CreateLectureHandler(rr, requestWithTestUser(req, testEducator))

		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rr.Code)
		}
	})

	t.Run("non owner is rejected", func(t *testing.T) {
		dbm := &mock.Db{
			GetCourseByIdFunc: func(id string) (*db.Course, error) { return owned, nil },
		}
		app := newCourseApp(t, dbm, router.Params{{Key: "courseId", Value: "course123"}})

		other := &db.User{ID: "other123", Role: db.RoleEducator}
		req := multipartRequest(t, "POST", "/api/course/createlecture/course123", map[string]string{"title": "x"}, nil)
		rr := httptest.NewRecorder()
		app.CreateLectureHandler(rr, requestWithTestUser(req, other))

		if rr.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
		}
	})
}

func TestUpdateLectureHandler(t *testing.T) {
	owned := &db.Course{ID: "course123", CreatorID: testEducator.ID}
	lecture := &db.Lecture{ID: "lec123", Title: "Intro", Video: "old.mp4"}

	t.Run("replacing the video removes the old file", func(t *testing.T) {
		deleted := ""
		dbm := &mock.Db{
			GetLectureByIdFunc:       func(id string) (*db.Lecture, error) { return lecture, nil },
			GetCourseIdByLectureFunc: func(lectureId string) (string, error) { return "course123", nil },
			GetCourseByIdFunc:        func(id string) (*db.Course, error) { return owned, nil },
			UpdateLectureFunc: func(id string, fields db.LectureUpdate) (*db.Lecture, error) {
				updated := *lecture
				if fields.Video != nil {
					updated.Video = *fields.Video
				}
				return &updated, nil
			},
		}
		app := newCourseApp(t, dbm, router.Params{{Key: "lectureId", Value: "lec123"}})
		app.store = &MockFileStore{
			DeleteFunc: func(name string) error {
				deleted = name
				return nil
			},
		}

		req := multipartRequest(t, "POST", "/api/course/editlecture/lec123", nil, map[string][]byte{"video": []byte("new")})
		rr := httptest.NewRecorder()
		app.UpdateLectureHandler(rr, requestWithTestUser(req, testEducator))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
		}
		if deleted != "old.mp4" {
			t.Errorf("expected old video removed, got %q", deleted)
		}
	})

	t.Run("detached lecture reads as missing", func(t *testing.T) {
		dbm := &mock.Db{
			GetLectureByIdFunc:       func(id string) (*db.Lecture, error) { return lecture, nil },
			GetCourseIdByLectureFunc: func(lectureId string) (string, error) { return "", nil },
		}
		app := newCourseApp(t, dbm, router.Params{{Key: "lectureId", Value: "lec123"}})

		req := multipartRequest(t, "POST", "/api/course/editlecture/lec123", map[string]string{"title": "x"}, nil)
		rr := httptest.NewRecorder()
		app.UpdateLectureHandler(rr, requestWithTestUser(req, testEducator))

		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
		}
	})
}

func TestDeleteLectureHandler(t *testing.T) {
	owned := &db.Course{ID: "course123", CreatorID: testEducator.ID}
	lecture := &db.Lecture{ID: "lec123", Video: "video.mp4"}

	newDeleteDb := func(deleted *bool) *mock.Db {
		return &mock.Db{
			GetLectureByIdFunc:       func(id string) (*db.Lecture, error) { return lecture, nil },
			GetCourseIdByLectureFunc: func(lectureId string) (string, error) { return "course123", nil },
			GetCourseByIdFunc:        func(id string) (*db.Course, error) { return owned, nil },
			DeleteLectureFunc: func(id string) error {
				*deleted = true
				return nil
			},
		}
	}

	t.Run("removes the lecture and its stored video", func(t *testing.T) {
		deletedLecture := false
		deletedFile := ""
		app := newCourseApp(t, newDeleteDb(&deletedLecture), router.Params{
			{Key: "courseId", Value: "course123"},
			{Key: "lectureId", Value: "lec123"},
		})
		app.store = &MockFileStore{
			DeleteFunc: func(name string) error {
				deletedFile = name
				return nil
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/api/course/deleteLecture/course123/lec123", nil)
		app.DeleteLectureHandler(rr, requestWithTestUser(req, testEducator))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
		}
		if !deletedLecture {
			t.Error("expected DeleteLecture to be called")
		}
		if deletedFile != "video.mp4" {
			t.Errorf("expected stored video removed, got %q", deletedFile)
		}
	})

	t.Run("course mismatch reads as missing", func(t *testing.T) {
		deletedLecture := false
		app := newCourseApp(t, newDeleteDb(&deletedLecture), router.Params{
			{Key: "courseId", Value: "other456"},
			{Key: "lectureId", Value: "lec123"},
		})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/api/course/deleteLecture/other456/lec123", nil)
		app.DeleteLectureHandler(rr, requestWithTestUser(req, testEducator))

		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
		}
		if deletedLecture {
			t.Error("DeleteLecture must not run for a mismatched course")
		}
	})
}

func TestGetLectureHandler(t *testing.T) {
	lecture := &db.Lecture{ID: "lec123", Title: "Intro"}

	t.Run("found", func(t *testing.T) {
		dbm := &mock.Db{
			GetLectureByIdFunc: func(id string) (*db.Lecture, error) { return lecture, nil },
		}
		app := newCourseApp(t, dbm, router.Params{{Key: "lectureId", Value: "lec123"}})

		rr := httptest.NewRecorder()
		app.GetLectureHandler(rr, httptest.NewRequest("GET", "/api/course/lecture/lec123", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
	})

	t.Run("missing", func(t *testing.T) {
		dbm := &mock.Db{
			GetLectureByIdFunc: func(id string) (*db.Lecture, error) { return nil, nil },
		}
		app := newCourseApp(t, dbm, router.Params{{Key: "lectureId", Value: "missing"}})

		rr := httptest.NewRecorder()
		app.GetLectureHandler(rr, httptest.NewRequest("GET", "/api/course/lecture/missing", nil))

		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
		}
	})
}
