package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biosecret/go-todos/apperr"
	"github.com/biosecret/go-todos/auth"
	"github.com/gofiber/fiber/v2"
)

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, apperr.InvalidToken(errors.New("bad signature"))
	}
	return &auth.Claims{Email: "a@b.com"}, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/", RequireToken(stubVerifier{}), func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(claims.Email)
	})
	return app
}

func TestRequireToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"missing token"}`},
		{"wrong scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, `{"error":"invalid token format"}`},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, `{"error":"invalid token format"}`},
		{"bad token", "Bearer nope", http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"good token", "Bearer good", http.StatusOK, "a@b.com"},
	}

	app := newTestApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.status {
				t.Fatalf("unexpected status: %d body=%s", resp.StatusCode, body)
			}
			if string(body) != tt.body {
				t.Errorf("unexpected body: %s", body)
			}
		})
	}
}
