// Package auth chứa phần hash mật khẩu và phát hành / xác thực JWT.
package auth

import (
	"errors"
	"fmt"

	"github.com/biosecret/go-todos/apperr"
	"golang.org/x/crypto/bcrypt"
)

// MinCost là cost bcrypt tối thiểu được chấp nhận
const MinCost = 10

// Passwords hash và kiểm tra mật khẩu bằng bcrypt
type Passwords struct {
	cost int
}

// NewPasswords tạo Passwords với cost cho trước (tối thiểu MinCost)
func NewPasswords(cost int) (*Passwords, error) {
	if cost < MinCost {
		return nil, fmt.Errorf("bcrypt cost %d is below the minimum of %d", cost, MinCost)
	}
	if cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d is above the maximum of %d", cost, bcrypt.MaxCost)
	}
	return &Passwords{cost: cost}, nil
}

// Hash trả về bcrypt hash có salt ngẫu nhiên của plaintext
func (p *Passwords) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("Password must be at most 72 bytes.")
		}
		return "", apperr.Internal("could not hash password", err)
	}
	return string(hashed), nil
}

// Verify so khớp plaintext với hash. Mật khẩu sai trả về false, nil;
// hash hỏng trả về lỗi Internal.
func (p *Passwords) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperr.Internal("could not verify password", err)
}
