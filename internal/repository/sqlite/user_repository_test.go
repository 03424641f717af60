package sqlite

import (
	"context"
	"errors"
	"testing"

	"blog-server/internal/domain"
)

func TestUserCreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := mustCreateUser(t, db, "alice", "a@x.com")
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected assigned created_at")
	}

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.Username != "alice" || got.ID != user.ID {
		t.Fatalf("unexpected user: %+v", got)
	}

	byID, err := repo.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Email != "a@x.com" {
		t.Fatalf("unexpected email: %s", byID.Email)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	mustCreateUser(t, db, "alice", "a@x.com")

	_, err := repo.Create(context.Background(), &domain.User{
		Username:     "alice2",
		Email:        "a@x.com",
		PasswordHash: "x",
	})
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// distinct emails both succeed and both are retrievable
	mustCreateUser(t, db, "bob", "b@x.com")
	for _, email := range []string{"a@x.com", "b@x.com"} {
		if _, err := repo.GetByEmail(context.Background(), email); err != nil {
			t.Fatalf("get %s: %v", email, err)
		}
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	mustCreateUser(t, db, "alice", "a@x.com")

	_, err := repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		Email:        "other@x.com",
		PasswordHash: "x",
	})
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	if _, err := repo.GetByEmail(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
