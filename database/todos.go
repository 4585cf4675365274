package database

import (
	"cmp"
	"context"
	"database/sql"
	"slices"

	"github.com/biosecret/go-todos/apperr"
	"github.com/biosecret/go-todos/models"
)

const (
	todoColumns = `id, user_id, title, "order", completed`
	todoOrderBy = ` ORDER BY "order" ASC, created_at ASC, id ASC`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var t models.Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Order, &t.Completed)
	return t, err
}

func (s *Store) todoNotFound(err error) error {
	err = s.dialect.classify(err)
	if apperr.Is(err, apperr.KindNotFound) {
		return apperr.NotFound("Todo not found")
	}
	return err
}

// ListTodos trả về tất cả todo, sắp theo order
func (s *Store) ListTodos(ctx context.Context) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+todoColumns+" FROM todos"+todoOrderBy)
	if err != nil {
		return nil, s.dialect.classify(err)
	}
	return s.collectTodos(rows)
}

func (s *Store) collectTodos(rows *sql.Rows) ([]models.Todo, error) {
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, s.dialect.classify(err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, s.dialect.classify(err)
	}
	return todos, nil
}

// GetTodo lấy một todo theo ID
func (s *Store) GetTodo(ctx context.Context, id string) (models.Todo, error) {
	t, err := scanTodo(s.db.QueryRowContext(ctx,
		s.query("SELECT "+todoColumns+" FROM todos WHERE id = ?"), id))
	if err != nil {
		return models.Todo{}, s.todoNotFound(err)
	}
	return t, nil
}

// CreateTodo tạo todo cho userID; completed mặc định là false.
// userID không tồn tại trả về lỗi Constraint và không lưu gì.
func (s *Store) CreateTodo(ctx context.Context, userID int64, title string, order int) (models.Todo, error) {
	q := s.query("INSERT INTO todos (id, user_id, title, \"order\", completed) VALUES (?, ?, ?, ?, ?) RETURNING " + todoColumns)

	// Thử tạo ID tối đa maxIDAttempts lần nếu ID bị trùng
	for attempt := 1; ; attempt++ {
		id, err := s.newID()
		if err != nil {
			return models.Todo{}, apperr.Internal("failed to generate ID", err)
		}

		t, err := scanTodo(s.db.QueryRowContext(ctx, q, id, userID, title, order, false))
		if err == nil {
			return t, nil
		}

		switch s.dialect.violation(err) {
		case uniqueViolation:
			if attempt < maxIDAttempts {
				continue
			}
			return models.Todo{}, apperr.Internal("failed to generate a unique ID", err)
		case foreignKeyViolation:
			return models.Todo{}, apperr.Constraint("user does not exist", err)
		}
		return models.Todo{}, s.dialect.classify(err)
	}
}

// UpdateTodo chỉ cập nhật các trường có trong patch, trong một câu lệnh
func (s *Store) UpdateTodo(ctx context.Context, id string, patch models.TodoPatch) (models.Todo, error) {
	if patch.Empty() {
		return s.GetTodo(ctx, id)
	}
	t, err := scanTodo(s.db.QueryRowContext(ctx,
		s.query(`UPDATE todos SET
			title = COALESCE(?, title),
			"order" = COALESCE(?, "order"),
			completed = COALESCE(?, completed)
		WHERE id = ? RETURNING `+todoColumns),
		patch.Title, patch.Order, patch.Completed, id,
	))
	if err != nil {
		return models.Todo{}, s.todoNotFound(err)
	}
	return t, nil
}

// DeleteTodo xoá một todo và trả về bản ghi đã xoá
func (s *Store) DeleteTodo(ctx context.Context, id string) (models.Todo, error) {
	t, err := scanTodo(s.db.QueryRowContext(ctx,
		s.query("DELETE FROM todos WHERE id = ? RETURNING "+todoColumns), id))
	if err != nil {
		return models.Todo{}, s.todoNotFound(err)
	}
	return t, nil
}

// ClearTodos xoá toàn bộ todo và trả về các bản ghi đã xoá
func (s *Store) ClearTodos(ctx context.Context) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx, "DELETE FROM todos RETURNING "+todoColumns)
	if err != nil {
		return nil, s.dialect.classify(err)
	}
	todos, err := s.collectTodos(rows)
	if err != nil {
		return nil, err
	}
	sortTodos(todos)
	return todos, nil
}

// sortTodos sắp theo order, giữ nguyên thứ tự trả về cho các order bằng nhau
func sortTodos(todos []models.Todo) {
	slices.SortStableFunc(todos, func(a, b models.Todo) int {
		return cmp.Compare(a.Order, b.Order)
	})
}
