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

const userColumns = `id, email, name, password, role, provider, description, photo,
	reset_code, reset_code_expires, reset_verified, created, updated`

// newUserFromStmt creates a User struct from a SQLite statement
func newUserFromStmt(stmt *sqlite.Stmt) (*db.User, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	resetExpires, err := db.TimeParse(stmt.GetText("reset_code_expires"))
	if err != nil {
		return nil, fmt.Errorf("error parsing reset_code_expires time: %w", err)
	}

	return &db.User{
		ID:               stmt.GetText("id"),
		Email:            stmt.GetText("email"),
		Name:             stmt.GetText("name"),
		Password:         stmt.GetText("password"),
		Role:             stmt.GetText("role"),
		Provider:         stmt.GetText("provider"),
		Description:      stmt.GetText("description"),
		Photo:            stmt.GetText("photo"),
		ResetCode:        stmt.GetText("reset_code"),
		ResetCodeExpires: resetExpires,
		ResetVerified:    stmt.GetInt64("reset_verified") != 0,
		Created:          created,
		Updated:          updated,
	}, nil
}

// GetUserByEmail retrieves a user by email address.
// Returns:
// - *db.User: User record if found, nil if no matching record exists
// - returned time fields are in UTC, RFC3339
// - error: Only returned for database errors, nil on successful query (even if no results)
// Note: A nil user with nil error indicates no matching record was found
func (d *Db) GetUserByEmail(email string) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User // Will remain nil if no rows found
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{email},
		})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (d *Db) GetUserById(id string) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{id},
		})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUserWithPassword inserts a new local-credential user. The caller
// provides the bcrypt hash in user.Password.
func (d *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	return d.createUser(user, db.ProviderLocal)
}

// CreateUserWithOauth2 inserts a new federated user with an empty password.
func (d *Db) CreateUserWithOauth2(user db.User) (*db.User, error) {
	user.Password = ""
	return d.createUser(user, db.ProviderGoogle)
}

func (d *Db) createUser(user db.User, provider string) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	role := user.Role
	if role == "" {
		role = db.RoleStudent
	}

	var created *db.User
	err = sqlitex.Execute(conn,
		`INSERT INTO users (id, email, name, password, role, provider, description, photo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				uuid.NewString(),
				user.Email,
				user.Name,
				user.Password,
				role,
				provider,
				user.Description,
				user.Photo,
			},
		})

	if err != nil {
		if isUniqueConstraint(err) {
			return nil, db.ErrConstraintUnique
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// SetResetCode stores a pending one-time code. Any previous verification is
// discarded, so an old verified state cannot authorize a new reset.
func (d *Db) SetResetCode(userId, code string, expires string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET reset_code = ?,
			reset_code_expires = ?,
			reset_verified = 0,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{code, expires, userId},
		})
	if err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}
	return nil
}

// MarkResetVerified consumes the code and arms the account for one password
// reset.
func (d *Db) MarkResetVerified(userId string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET reset_code = '',
			reset_code_expires = '',
			reset_verified = 1,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{userId},
		})
	if err != nil {
		return fmt.Errorf("failed to mark reset verified: %w", err)
	}
	return nil
}

// UpdatePassword stores a new password hash. The record becomes a local
// credential again and the reset-verified flag is consumed, so a completed
// reset cannot be replayed.
func (d *Db) UpdatePassword(userId string, newPassword string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET password = ?,
			provider = ?,
			reset_verified = 0,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{newPassword, db.ProviderLocal, userId},
		})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// UpdateProfile applies the non-nil fields and returns the updated record.
func (d *Db) UpdateProfile(userId string, fields db.ProfileUpdate) (*db.User, error) {
	var set []string
	var args []interface{}

	if fields.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *fields.Name)
	}
	if fields.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *fields.Description)
	}
	if fields.Photo != nil {
		set = append(set, "photo = ?")
		args = append(args, *fields.Photo)
	}

	if len(set) == 0 {
		user, err := d.GetUserById(userId)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, db.ErrUserNotFound
		}
		return user, nil
	}

	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	set = append(set, "updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))")
	args = append(args, userId)

	var user *db.User
	err = sqlitex.Execute(conn,
		`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id = ? RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: args,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, db.ErrUserNotFound
	}

	return user, nil
}
