// Package apperr định nghĩa các loại lỗi dùng chung giữa store, auth và handlers.
package apperr

import (
	"errors"
	"net/http"
)

// Kind phân loại lỗi để handler biết trả về status nào
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindInvalidToken
	KindConstraint
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidToken:
		return "invalid_token"
	case KindConstraint:
		return "constraint_violation"
	case KindUnavailable:
		return "store_unavailable"
	default:
		return "internal"
	}
}

// Status trả về HTTP status tương ứng với loại lỗi.
// ConstraintViolation vẫn là 500 trên bề mặt HTTP hiện tại.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized, KindInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Public cho biết message của lỗi có được gửi cho client hay không
func (k Kind) Public() bool {
	return k.Status() < http.StatusInternalServerError
}

// Error là lỗi có phân loại. Message là phần an toàn để hiển thị,
// Err là nguyên nhân gốc chỉ dùng để ghi log.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) error {
	return New(KindValidation, message, nil)
}

func NotFound(message string) error {
	return New(KindNotFound, message, nil)
}

func Unauthorized(message string) error {
	return New(KindUnauthorized, message, nil)
}

func InvalidToken(err error) error {
	return New(KindInvalidToken, "invalid or expired token", err)
}

func Constraint(message string, err error) error {
	return New(KindConstraint, message, err)
}

func Unavailable(err error) error {
	return New(KindUnavailable, "store unavailable", err)
}

func Internal(message string, err error) error {
	return New(KindInternal, message, err)
}

// KindOf trả về Kind của lỗi; lỗi không phân loại được coi là Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is kiểm tra err có thuộc loại kind hay không
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage trả về message an toàn cho client nếu loại lỗi cho phép
func PublicMessage(err error) (string, bool) {
	var e *Error
	if !errors.As(err, &e) || !e.Kind.Public() {
		return "", false
	}
	return e.Message, true
}
