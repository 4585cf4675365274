package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
		public bool
	}{
		{KindValidation, http.StatusBadRequest, true},
		{KindNotFound, http.StatusNotFound, true},
		{KindUnauthorized, http.StatusUnauthorized, true},
		{KindInvalidToken, http.StatusUnauthorized, true},
		{KindConstraint, http.StatusInternalServerError, false},
		{KindUnavailable, http.StatusInternalServerError, false},
		{KindInternal, http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Status(); got != tt.status {
				t.Errorf("Status() = %d, want %d", got, tt.status)
			}
			if got := tt.kind.Public(); got != tt.public {
				t.Errorf("Public() = %v, want %v", got, tt.public)
			}
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := fmt.Errorf("create user: %w", Constraint("email already registered", cause))

	if KindOf(err) != KindConstraint {
		t.Fatalf("KindOf() = %v, want %v", KindOf(err), KindConstraint)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped error to unwrap to its cause")
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Errorf("unclassified errors should be internal")
	}
	if Is(nil, KindInternal) {
		t.Errorf("nil error must not match any kind")
	}
}

func TestPublicMessage(t *testing.T) {
	if msg, ok := PublicMessage(NotFound("Todo not found")); !ok || msg != "Todo not found" {
		t.Errorf("PublicMessage(NotFound) = %q, %v", msg, ok)
	}
	if _, ok := PublicMessage(Internal("could not sign token", errors.New("secret"))); ok {
		t.Errorf("internal errors must not expose their message")
	}
	if _, ok := PublicMessage(errors.New("plain")); ok {
		t.Errorf("plain errors must not expose their message")
	}
}
