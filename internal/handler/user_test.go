package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/signet/signet/internal/handler/dto"
)

func TestUserList(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	for _, u := range []struct{ email, name string }{
		{"a@x.com", "A"},
		{"b@x.com", "B"},
		{"c@x.com", "C"},
	} {
		if _, err := store.CreateUser(context.Background(), u.email, "$argon2id$fake", u.name); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	store.users["c@x.com"].IsActive = false
	store.users["c@x.com"].CreatedAt = time.Now().Add(-time.Hour)

	h := NewUserHandler(testLogger(), store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.UserListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 users, got %d", len(resp.Data))
	}

	// Ordered by id, inactive users included.
	if resp.Data[0].Email != "a@x.com" || resp.Data[2].Email != "c@x.com" {
		t.Errorf("unexpected ordering: %+v", resp.Data)
	}
	if resp.Data[2].IsActive {
		t.Error("inactive flag lost in listing")
	}
}

func TestUserList_NeverReturnsHashes(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	if _, err := store.CreateUser(context.Background(), "a@x.com", "$argon2id$fake", "A"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	h := NewUserHandler(testLogger(), store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, "argon2id") || strings.Contains(body, "password") {
		t.Errorf("listing leaked credential material: %s", body)
	}
}

func TestUserList_Empty(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(testLogger(), newFakeUserStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.UserListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data == nil {
		t.Error("expected an empty array, not null")
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected no users, got %d", len(resp.Data))
	}
}

func TestUserList_StoreFailure(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	store.err = context.DeadlineExceeded

	h := NewUserHandler(testLogger(), store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
