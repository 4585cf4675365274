// Package database chứa Repository cho User và Todo trên database/sql.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/biosecret/go-todos/config"
	"github.com/biosecret/go-todos/models"
	"github.com/gofiber/fiber/v2/log"
)

// Repository là các thao tác lưu trữ mà handlers cần.
// Mọi lỗi trả về đều thuộc apperr: NotFound, Constraint hoặc Unavailable.
type Repository interface {
	CreateUser(ctx context.Context, u models.NewUser) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	ListTodos(ctx context.Context) ([]models.Todo, error)
	GetTodo(ctx context.Context, id string) (models.Todo, error)
	CreateTodo(ctx context.Context, userID int64, title string, order int) (models.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch models.TodoPatch) (models.Todo, error)
	DeleteTodo(ctx context.Context, id string) (models.Todo, error)
	ClearTodos(ctx context.Context) ([]models.Todo, error)
}

// Store triển khai Repository trên một connection pool
type Store struct {
	db      *sql.DB
	dialect dialect
	newID   func() (string, error)
}

var _ Repository = (*Store)(nil)

// Open kết nối tới database theo cấu hình và tạo bảng nếu chưa tồn tại
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.PostgresURI)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func open(ctx context.Context, d dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if d.maxConns > 0 {
		db.SetMaxOpenConns(d.maxConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to %s: %w", d.name, err)
	}
	return db, nil
}

func newStore(ctx context.Context, db *sql.DB, d dialect) (*Store, error) {
	s := &Store{db: db, dialect: d, newID: GenerateTodoID}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	log.Infof("Connected to %s, tables created or already exist", d.name)
	return s, nil
}

func (s *Store) createTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.dialect.schema)
	return err
}

// Ping kiểm tra kết nối, dùng cho /health
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return s.dialect.classify(err)
	}
	return nil
}

// Close đóng connection pool
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	log.Info("Database connection closed")
	return nil
}

func (s *Store) query(q string) string {
	return s.dialect.rebind(q)
}
