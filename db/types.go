package db

import "time"

// Role values a user record may carry.
const (
	RoleStudent  = "student"
	RoleEducator = "educator"
)

// Provider values describing where a credential originated.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Course difficulty levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// User represents a user from the database.
// Timestamps (Created and Updated) use RFC3339 format in UTC timezone.
// Example: "2024-03-07T15:04:05Z"
type User struct {
	ID    string
	Email string
	Name  string
	// Non empty password means password authentication is active.
	// Password is empty for federated-only accounts.
	Password    string
	Role        string
	Provider    string
	Description string
	Photo       string
	// Password-reset state. ResetCode is empty when no reset is pending.
	ResetCode        string
	ResetCodeExpires time.Time
	ResetVerified    bool
	Created          time.Time
	Updated          time.Time
}

// Course represents a course from the database. LectureIDs preserves the
// educator's ordering; EnrolledIDs carries the enrolled student ids.
type Course struct {
	ID           string
	Title        string
	Subtitle     string
	Description  string
	Category     string
	Level        string
	Price        float64
	Rating       float64
	Thumbnail    string
	Published    bool
	Requirements []string
	Objectives   []string
	CreatorID    string
	LectureIDs   []string
	EnrolledIDs  []string
	Created      time.Time
	Updated      time.Time
}

// Lecture represents a lecture from the database. A lecture does not know
// its owning course; the attachment lives on the course side.
type Lecture struct {
	ID          string
	Title       string
	Video       string
	FreePreview bool
	Created     time.Time
	Updated     time.Time
}

// ProfileUpdate carries a partial user-profile update. Nil fields are left
// untouched by the store.
type ProfileUpdate struct {
	Name        *string
	Description *string
	Photo       *string
}

// CourseUpdate carries a partial course update. Nil fields are left
// untouched by the store.
type CourseUpdate struct {
	Title        *string
	Subtitle     *string
	Description  *string
	Category     *string
	Level        *string
	Price        *float64
	Thumbnail    *string
	Published    *bool
	Requirements *[]string
	Objectives   *[]string
}

// LectureUpdate carries a partial lecture update.
type LectureUpdate struct {
	Title       *string
	Video       *string
	FreePreview *bool
}

// TimeFormat returns t in the storage format: RFC3339 in UTC.
func TimeFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimeParse parses a storage timestamp. The empty string parses to the
// zero time, which is how nullable timestamp columns round-trip.
func TimeParse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
