package core

import (
	"github.com/learnhub/learnhub/db"
)

// Dynamic success codes for course and lecture responses.
const (
	CodeOkCourse      = "ok_course"
	CodeOkCourseList  = "ok_course_list"
	CodeOkLecture     = "ok_lecture"
	CodeOkLectureList = "ok_lecture_list"
	CodeOkUser        = "ok_user"
)

// CourseData is the course as clients see it. The lecture ids keep the
// educator's ordering.
type CourseData struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	Level        string   `json:"level"`
	Price        float64  `json:"price"`
	Rating       float64  `json:"rating"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Published    bool     `json:"published"`
	Requirements []string `json:"requirements"`
	Objectives   []string `json:"objectives"`
	CreatorID    string   `json:"creator_id"`
	LectureIDs   []string `json:"lecture_ids"`
	EnrolledIDs  []string `json:"enrolled_ids"`
	Created      string   `json:"created"`
	Updated      string   `json:"updated"`
}

// LectureData is the lecture as clients see it.
type LectureData struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Video       string `json:"video,omitempty"`
	FreePreview bool   `json:"free_preview"`
	Created     string `json:"created"`
	Updated     string `json:"updated"`
}

func newCourseData(c *db.Course) CourseData {
	requirements := c.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	objectives := c.Objectives
	if objectives == nil {
		objectives = []string{}
	}
	lectureIDs := c.LectureIDs
	if lectureIDs == nil {
		lectureIDs = []string{}
	}
	enrolledIDs := c.EnrolledIDs
	if enrolledIDs == nil {
		enrolledIDs = []string{}
	}

	return CourseData{
		ID:           c.ID,
		Title:        c.Title,
		Subtitle:     c.Subtitle,
		Description:  c.Description,
		Category:     c.Category,
		Level:        c.Level,
		Price:        c.Price,
		Rating:       c.Rating,
		Thumbnail:    c.Thumbnail,
		Published:    c.Published,
		Requirements: requirements,
		Objectives:   objectives,
		CreatorID:    c.CreatorID,
		LectureIDs:   lectureIDs,
		EnrolledIDs:  enrolledIDs,
		Created:      db.TimeFormat(c.Created),
		Updated:      db.TimeFormat(c.Updated),
	}
}

func newCourseList(courses []*db.Course) []CourseData {
	list := make([]CourseData, 0, len(courses))
	for _, c := range courses {
		list = append(list, newCourseData(c))
	}
	return list
}

func newLectureData(l *db.Lecture) LectureData {
	return LectureData{
		ID:          l.ID,
		Title:       l.Title,
		Video:       l.Video,
		FreePreview: l.FreePreview,
		Created:     db.TimeFormat(l.Created),
		Updated:     db.TimeFormat(l.Updated),
	}
}

func newLectureList(lectures []*db.Lecture) []LectureData {
	list := make([]LectureData, 0, len(lectures))
	for _, l := range lectures {
		list = append(list, newLectureData(l))
	}
	return list
}
