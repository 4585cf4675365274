package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/biosecret/go-todos/apperr"
)

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
)

// dialect gom những điểm khác nhau giữa PostgreSQL và SQLite
type dialect struct {
	name      string
	driver    string
	schema    string
	numbered  bool
	maxConns  int
	violation func(error) violation
	offline   func(error) bool
}

// rebind đổi placeholder "?" sang "$n" nếu dialect dùng tham số đánh số
func (d dialect) rebind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// classify chuyển lỗi driver thành apperr
func (d dialect) classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("record not found")
	}
	switch d.violation(err) {
	case uniqueViolation:
		return apperr.Constraint("unique constraint violated", err)
	case foreignKeyViolation:
		return apperr.Constraint("foreign key constraint violated", err)
	}
	if isOffline(err) || (d.offline != nil && d.offline(err)) {
		return apperr.Unavailable(err)
	}
	return apperr.Internal("database error", err)
}

func isOffline(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
