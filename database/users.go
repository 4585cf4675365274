package database

import (
	"context"

	"github.com/biosecret/go-todos/apperr"
	"github.com/biosecret/go-todos/models"
)

const userColumns = "id, first_name, last_name, email, password"

// CreateUser lưu user mới. Email trùng trả về lỗi Constraint và không đụng tới bản ghi cũ.
func (s *Store) CreateUser(ctx context.Context, u models.NewUser) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		s.query("INSERT INTO users (first_name, last_name, email, password) VALUES (?, ?, ?, ?) RETURNING "+userColumns),
		u.FirstName, u.LastName, u.Email, u.PasswordHash,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash)
	if err != nil {
		err = s.dialect.classify(err)
		if apperr.Is(err, apperr.KindConstraint) {
			return models.User{}, apperr.Constraint("email already registered", err)
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail tìm user theo email (phân biệt hoa thường)
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		s.query("SELECT "+userColumns+" FROM users WHERE email = ?"), email,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash)
	if err != nil {
		err = s.dialect.classify(err)
		if apperr.Is(err, apperr.KindNotFound) {
			return models.User{}, apperr.NotFound("User not found.")
		}
		return models.User{}, err
	}
	return user, nil
}
