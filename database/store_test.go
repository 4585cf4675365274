package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/biosecret/go-todos/apperr"
	"github.com/biosecret/go-todos/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// setupTestDB mở một SQLite in-memory mới cho mỗi test
func setupTestDB(t *testing.T) *Store {
	t.Helper()

	store, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return store
}

func createTestUser(t *testing.T, s *Store, email string) models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), models.NewUser{
		FirstName:    "A",
		LastName:     "B",
		Email:        email,
		PasswordHash: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("Failed to create test user %s: %v", email, err)
	}
	return user
}

func countTodos(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM todos").Scan(&n); err != nil {
		t.Fatalf("failed to count todos: %v", err)
	}
	return n
}

func TestRebind(t *testing.T) {
	q := "UPDATE todos SET title = COALESCE(?, title) WHERE id = ?"
	if got := postgres.rebind(q); got != "UPDATE todos SET title = COALESCE($1, title) WHERE id = $2" {
		t.Errorf("postgres rebind = %q", got)
	}
	if got := sqlite.rebind(q); got != q {
		t.Errorf("sqlite rebind changed the query: %q", got)
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := map[string]string{
		":memory:":                   ":memory:?_foreign_keys=on",
		"todos.db":                   "todos.db?_foreign_keys=on",
		"file:todos.db?cache=shared": "file:todos.db?cache=shared&_foreign_keys=on",
		"todos.db?_fk=1":             "todos.db?_fk=1",
	}
	for in, want := range tests {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateUserAndGetUser(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	created := createTestUser(t, s, "a@b.com")
	if created.ID == 0 {
		t.Errorf("CreateUser() returned user with ID 0")
	}

	t.Run("Get By Email", func(t *testing.T) {
		got, err := s.GetUserByEmail(ctx, "a@b.com")
		if err != nil {
			t.Fatalf("GetUserByEmail() error = %v", err)
		}
		if !reflect.DeepEqual(got, created) {
			t.Errorf("GetUserByEmail() got = %+v, want %+v", got, created)
		}
	})

	t.Run("Email Is Case Sensitive", func(t *testing.T) {
		_, err := s.GetUserByEmail(ctx, "A@B.COM")
		if !apperr.Is(err, apperr.KindNotFound) {
			t.Errorf("GetUserByEmail() error = %v, want not found", err)
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		_, err := s.CreateUser(ctx, models.NewUser{Email: "a@b.com", PasswordHash: "other"})
		if !apperr.Is(err, apperr.KindConstraint) {
			t.Fatalf("CreateUser() with existing email error = %v, want constraint violation", err)
		}

		got, err := s.GetUserByEmail(ctx, "a@b.com")
		if err != nil {
			t.Fatalf("GetUserByEmail() error = %v", err)
		}
		if got.PasswordHash != created.PasswordHash || got.FirstName != "A" {
			t.Errorf("existing user was modified: %+v", got)
		}
	})

	t.Run("Non-existent User", func(t *testing.T) {
		_, err := s.GetUserByEmail(ctx, "nobody@example.com")
		if !apperr.Is(err, apperr.KindNotFound) {
			t.Errorf("GetUserByEmail() error = %v, want not found", err)
		}
	})
}

func TestCreateTodo(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, s, "a@b.com")

	todo, err := s.CreateTodo(ctx, user.ID, "buy milk", 1)
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	if len(todo.ID) != 32 || todo.UserID != user.ID || todo.Title != "buy milk" || todo.Order != 1 || todo.Completed {
		t.Errorf("unexpected todo: %+v", todo)
	}

	got, err := s.GetTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("GetTodo() error = %v", err)
	}
	if got != todo {
		t.Errorf("GetTodo() = %+v, want %+v", got, todo)
	}

	t.Run("Unknown User", func(t *testing.T) {
		before := countTodos(t, s)
		_, err := s.CreateTodo(ctx, user.ID+100, "orphan", 0)
		if !apperr.Is(err, apperr.KindConstraint) {
			t.Fatalf("CreateTodo() error = %v, want constraint violation", err)
		}
		if after := countTodos(t, s); after != before {
			t.Errorf("todo count changed from %d to %d", before, after)
		}
	})
}

func TestCreateTodoRetriesDuplicateID(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, s, "a@b.com")

	ids := []string{"dup", "dup", "fresh"}
	s.newID = func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}

	if _, err := s.CreateTodo(ctx, user.ID, "first", 0); err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	second, err := s.CreateTodo(ctx, user.ID, "second", 0)
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	if second.ID != "fresh" {
		t.Errorf("second todo ID = %q, want fresh", second.ID)
	}

	t.Run("Gives Up", func(t *testing.T) {
		s.newID = func() (string, error) { return "dup", nil }
		_, err := s.CreateTodo(ctx, user.ID, "third", 0)
		if !apperr.Is(err, apperr.KindInternal) {
			t.Errorf("CreateTodo() error = %v, want internal error", err)
		}
	})

	t.Run("Generator Failure", func(t *testing.T) {
		s.newID = func() (string, error) { return "", errors.New("entropy exhausted") }
		if _, err := s.CreateTodo(ctx, user.ID, "fourth", 0); err == nil {
			t.Errorf("CreateTodo() expected error, got nil")
		}
	})
}

func TestUpdateTodo(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, s, "a@b.com")
	todo, err := s.CreateTodo(ctx, user.ID, "buy milk", 1)
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}

	done := true
	updated, err := s.UpdateTodo(ctx, todo.ID, models.TodoPatch{Completed: &done})
	if err != nil {
		t.Fatalf("UpdateTodo() error = %v", err)
	}
	want := todo
	want.Completed = true
	if updated != want {
		t.Errorf("UpdateTodo() = %+v, want %+v", updated, want)
	}

	title, order := "buy oat milk", 5
	updated, err = s.UpdateTodo(ctx, todo.ID, models.TodoPatch{Title: &title, Order: &order})
	if err != nil {
		t.Fatalf("UpdateTodo() error = %v", err)
	}
	if updated.Title != title || updated.Order != order || !updated.Completed {
		t.Errorf("UpdateTodo() lost fields: %+v", updated)
	}

	t.Run("Empty Patch", func(t *testing.T) {
		got, err := s.UpdateTodo(ctx, todo.ID, models.TodoPatch{})
		if err != nil {
			t.Fatalf("UpdateTodo() error = %v", err)
		}
		if got != updated {
			t.Errorf("empty patch changed todo: %+v", got)
		}
	})

	t.Run("Missing Todo", func(t *testing.T) {
		for _, patch := range []models.TodoPatch{{}, {Completed: &done}} {
			if _, err := s.UpdateTodo(ctx, "missing", patch); !apperr.Is(err, apperr.KindNotFound) {
				t.Errorf("UpdateTodo() error = %v, want not found", err)
			}
		}
	})
}

func TestDeleteAndClearTodos(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, s, "a@b.com")

	second, err := s.CreateTodo(ctx, user.ID, "second", 2)
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	first, err := s.CreateTodo(ctx, user.ID, "first", 1)
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	third, err := s.CreateTodo(ctx, user.ID, "third", 3)
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}

	all, err := s.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos() error = %v", err)
	}
	if !reflect.DeepEqual(all, []models.Todo{first, second, third}) {
		t.Errorf("ListTodos() = %+v", all)
	}

	deleted, err := s.DeleteTodo(ctx, third.ID)
	if err != nil {
		t.Fatalf("DeleteTodo() error = %v", err)
	}
	if deleted != third {
		t.Errorf("DeleteTodo() = %+v, want %+v", deleted, third)
	}
	if _, err := s.DeleteTodo(ctx, third.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("second DeleteTodo() error = %v, want not found", err)
	}
	if _, err := s.GetTodo(ctx, third.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("GetTodo() after delete error = %v, want not found", err)
	}

	cleared, err := s.ClearTodos(ctx)
	if err != nil {
		t.Fatalf("ClearTodos() error = %v", err)
	}
	if !reflect.DeepEqual(cleared, []models.Todo{first, second}) {
		t.Errorf("ClearTodos() = %+v", cleared)
	}

	remaining, err := s.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos() error = %v", err)
	}
	if len(remaining) != 0 || remaining == nil {
		t.Errorf("ListTodos() after clear = %#v, want empty slice", remaining)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{"no rows", sql.ErrNoRows, apperr.KindNotFound},
		{"bad conn", driver.ErrBadConn, apperr.KindUnavailable},
		{"conn done", fmt.Errorf("query: %w", sql.ErrConnDone), apperr.KindUnavailable},
		{"deadline", context.DeadlineExceeded, apperr.KindUnavailable},
		{"pg unique", &pgconn.PgError{Code: "23505"}, apperr.KindConstraint},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, apperr.KindConstraint},
		{"pg admin shutdown", &pgconn.PgError{Code: "57P01"}, apperr.KindUnavailable},
		{"pg syntax", &pgconn.PgError{Code: "42601"}, apperr.KindInternal},
		{"other", errors.New("boom"), apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.KindOf(postgres.classify(tt.err)); got != tt.kind {
				t.Errorf("classify(%v) kind = %v, want %v", tt.err, got, tt.kind)
			}
		})
	}
}
