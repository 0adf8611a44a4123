package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mikkelsv/taskvault/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{
		ID:           "user_abc123",
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hashedpw",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
	if user.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be set")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user1 := &domain.User{ID: "user_1", Email: "dup@example.com", PasswordHash: "hash1"}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	user2 := &domain.User{ID: "user_2", Email: "dup@example.com", PasswordHash: "hash2"}
	err := repo.Create(ctx, user2)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := createTestUser(t, db, "byid@example.com")

	found, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if found.Email != user.Email {
		t.Fatalf("expected email %q, got %q", user.Email, found.Email)
	}
	if found.Name != user.Name {
		t.Fatalf("expected name %q, got %q", user.Name, found.Name)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByID(context.Background(), "user_missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := createTestUser(t, db, "byemail@example.com")

	found, err := repo.GetByEmail(ctx, "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	if found.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, found.ID)
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByEmail(context.Background(), "nonexistent@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
