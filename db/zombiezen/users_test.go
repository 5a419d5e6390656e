package zombiezen

import (
	"context"
	"errors"
	"testing"
	"time"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/migrations"
)

// newTestDB creates a new in-memory SQLite database and applies the full
// schema.
func newTestDB(t *testing.T) *Db {
	t.Helper()

	pool, err := sqlitex.NewPool("file::memory:", sqlitex.PoolOptions{
		PoolSize: 1,
	})
	if err != nil {
		t.Fatalf("failed to create db pool: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("failed to close db pool: %v", err)
		}
	})

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("failed to get db connection: %v", err)
	}
	defer pool.Put(conn)

	if err := ApplyMigrations(conn, migrations.Schema()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	testDB, err := New(pool)
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	return testDB
}

func TestUserLifecycle(t *testing.T) {
	testDB := newTestDB(t)
	var userPassword, userOauth *db.User
	var err error

	t.Run("CreateWithPassword", func(t *testing.T) {
		userPassword, err = testDB.CreateUserWithPassword(db.User{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "hashed-password",
			Role:     db.RoleEducator,
		})
		if err != nil {
			t.Fatalf("CreateUserWithPassword failed: %v", err)
		}
		if userPassword.ID == "" {
			t.Fatal("expected user to have an ID")
		}
		if userPassword.Password != "hashed-password" {
			t.Errorf("expected password to be 'hashed-password', got %q", userPassword.Password)
		}
		if userPassword.Provider != db.ProviderLocal {
			t.Errorf("expected provider %q, got %q", db.ProviderLocal, userPassword.Provider)
		}
		if userPassword.Role != db.RoleEducator {
			t.Errorf("expected role %q, got %q", db.RoleEducator, userPassword.Role)
		}
	})

	t.Run("CreateWithOauth2", func(t *testing.T) {
		userOauth, err = testDB.CreateUserWithOauth2(db.User{
			Name:  "Oauth User",
			Email: "oauth@example.com",
		})
		if err != nil {
			t.Fatalf("CreateUserWithOauth2 failed: %v", err)
		}
		if userOauth.Password != "" {
			t.Errorf("expected password to be empty, got %q", userOauth.Password)
		}
		if userOauth.Provider != db.ProviderGoogle {
			t.Errorf("expected provider %q, got %q", db.ProviderGoogle, userOauth.Provider)
		}
		if userOauth.Role != db.RoleStudent {
			t.Errorf("expected default role %q, got %q", db.RoleStudent, userOauth.Role)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := testDB.CreateUserWithPassword(db.User{
			Email:    "test@example.com",
			Password: "other",
		})
		if !errors.Is(err, db.ErrConstraintUnique) {
			t.Errorf("expected ErrConstraintUnique, got %v", err)
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		fetchedUser, err := testDB.GetUserByEmail("test@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if fetchedUser == nil {
			t.Fatal("expected to fetch a user, but got nil")
		}
		if fetchedUser.ID != userPassword.ID {
			t.Errorf("expected user ID %q, got %q", userPassword.ID, fetchedUser.ID)
		}
	})

	t.Run("GetByEmailMissing", func(t *testing.T) {
		fetchedUser, err := testDB.GetUserByEmail("nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if fetchedUser != nil {
			t.Errorf("expected nil user for missing email, got %+v", fetchedUser)
		}
	})

	t.Run("GetByID", func(t *testing.T) {
		fetchedUser, err := testDB.GetUserById(userPassword.ID)
		if err != nil {
			t.Fatalf("GetUserById failed: %v", err)
		}
		if fetchedUser == nil {
			t.Fatal("expected to fetch a user, but got nil")
		}
		if fetchedUser.Email != "test@example.com" {
			t.Errorf("expected user email 'test@example.com', got %q", fetchedUser.Email)
		}
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		name := "Renamed User"
		photo := "photos/abc.png"
		updated, err := testDB.UpdateProfile(userPassword.ID, db.ProfileUpdate{
			Name:  &name,
			Photo: &photo,
		})
		if err != nil {
			t.Fatalf("UpdateProfile failed: %v", err)
		}
		if updated.Name != name {
			t.Errorf("expected name %q, got %q", name, updated.Name)
		}
		if updated.Photo != photo {
			t.Errorf("expected photo %q, got %q", photo, updated.Photo)
		}
		// Untouched fields survive.
		if updated.Email != "test@example.com" {
			t.Errorf("expected email to be unchanged, got %q", updated.Email)
		}
	})

	t.Run("UpdateProfileMissingUser", func(t *testing.T) {
		name := "Nobody"
		_, err := testDB.UpdateProfile("no-such-id", db.ProfileUpdate{Name: &name})
		if !errors.Is(err, db.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestPasswordResetFlow(t *testing.T) {
	testDB := newTestDB(t)

	user, err := testDB.CreateUserWithOauth2(db.User{Email: "reset@example.com"})
	if err != nil {
		t.Fatalf("CreateUserWithOauth2 failed: %v", err)
	}

	expires := db.TimeFormat(time.Now().Add(5 * time.Minute))
	if err := testDB.SetResetCode(user.ID, "123456", expires); err != nil {
		t.Fatalf("SetResetCode failed: %v", err)
	}

	fetched, err := testDB.GetUserById(user.ID)
	if err != nil {
		t.Fatalf("GetUserById failed: %v", err)
	}
	if fetched.ResetCode != "123456" {
		t.Errorf("expected reset code '123456', got %q", fetched.ResetCode)
	}
	if fetched.ResetVerified {
		t.Error("expected reset_verified to be false after SetResetCode")
	}
	if fetched.ResetCodeExpires.IsZero() {
		t.Error("expected reset_code_expires to be set")
	}

	if err := testDB.MarkResetVerified(user.ID); err != nil {
		t.Fatalf("MarkResetVerified failed: %v", err)
	}

	fetched, err = testDB.GetUserById(user.ID)
	if err != nil {
		t.Fatalf("GetUserById failed: %v", err)
	}
	if !fetched.ResetVerified {
		t.Error("expected reset_verified to be true after MarkResetVerified")
	}
	if fetched.ResetCode != "" {
		t.Errorf("expected reset code to be cleared, got %q", fetched.ResetCode)
	}

	if err := testDB.UpdatePassword(user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	fetched, err = testDB.GetUserById(user.ID)
	if err != nil {
		t.Fatalf("GetUserById failed: %v", err)
	}
	if fetched.Password != "new-hash" {
		t.Errorf("expected new password hash, got %q", fetched.Password)
	}
	if fetched.Provider != db.ProviderLocal {
		t.Errorf("expected provider to become %q, got %q", db.ProviderLocal, fetched.Provider)
	}
	if fetched.ResetVerified {
		t.Error("expected reset_verified to be consumed by UpdatePassword")
	}
}
