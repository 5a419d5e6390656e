package zombiezen

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/learnhub/learnhub/db"
)

type Db struct {
	pool *sqlitex.Pool
}

// Verify interface implementations
var _ db.DbAuth = (*Db)(nil)
var _ db.DbCourse = (*Db)(nil)
var _ db.DbLecture = (*Db)(nil)
var _ db.DbApp = (*Db)(nil)

// New creates a new Db instance using an existing pool provided by the user.
// The lifecycle of the pool is managed externally; this type does not close it.
func New(pool *sqlitex.Pool) (*Db, error) {
	if pool == nil {
		return nil, fmt.Errorf("provided pool cannot be nil")
	}
	return &Db{pool: pool}, nil
}

// isUniqueConstraint reports whether err is a SQLite unique constraint
// violation, so callers can map it to db.ErrConstraintUnique.
func isUniqueConstraint(err error) bool {
	return sqlite.ErrCode(err) == sqlite.ResultConstraintUnique
}
