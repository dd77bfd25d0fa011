package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/signet/signet/internal/testutil"
)

// newTestRepository connects to the database named by TEST_DATABASE_URL,
// serializes against other DB tests, and resets the users schema.
// Skips when the variable is unset.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release db lock: %v", err)
		}
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset users schema: %v", err)
	}

	return repo
}

func TestCreateUser(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "a@x.com", "$argon2id$fake", "A")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID == 0 {
		t.Error("expected a store-assigned id")
	}
	if user.Email != "a@x.com" || user.FullName != "A" {
		t.Errorf("unexpected user: %+v", user)
	}
	if !user.IsActive {
		t.Error("new users should be active")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	original, err := repo.CreateUser(ctx, "a@x.com", "$argon2id$original", "A")
	if err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	_, err = repo.CreateUser(ctx, "a@x.com", "$argon2id$other", "B")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// The original record survives untouched.
	got, err := repo.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != original.ID || got.PasswordHash != "$argon2id$original" || got.FullName != "A" {
		t.Errorf("duplicate insert disturbed the original record: %+v", got)
	}
}

func TestGetUserByEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "a@x.com", "$argon2id$fake", "A")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != created.ID || got.PasswordHash != "$argon2id$fake" {
		t.Errorf("unexpected user: %+v", got)
	}

	// Exact match only.
	if _, err := repo.GetUserByEmail(ctx, "A@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for case-mismatched email, got %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "nobody@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty table, got %d users", len(users))
	}

	for _, u := range []struct{ email, name string }{
		{"a@x.com", "A"},
		{"b@x.com", "B"},
	} {
		if _, err := repo.CreateUser(ctx, u.email, "$argon2id$fake", u.name); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	users, err = repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Email != "a@x.com" || users[1].Email != "b@x.com" {
		t.Errorf("expected id ordering, got %+v", users)
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Errorf("listing exposed a password hash for %s", u.Email)
		}
	}
}
