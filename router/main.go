package router

import (
	"github.com/biosecret/go-todos/events"
	"github.com/biosecret/go-todos/handlers"
	"github.com/biosecret/go-todos/middleware"
	"github.com/gofiber/fiber/v2"
)

// Options là các phần phụ trợ của bộ route
type Options struct {
	Health handlers.Pinger
	Broker *events.Broker

	// AuthRequired bật kiểm tra bearer token trên các route todo.
	// Mặc định tắt: các route todo hiện không yêu cầu token.
	AuthRequired bool
	Tokens       middleware.TokenVerifier
}

// SetupRoutes đăng ký toàn bộ route. Các route cố định phải đứng trước "/:id"
// vì fiber khớp route theo thứ tự đăng ký.
func SetupRoutes(app *fiber.App, h *handlers.Handlers, opts Options) {
	guard := func(hs ...fiber.Handler) []fiber.Handler {
		if opts.AuthRequired && opts.Tokens != nil {
			return append([]fiber.Handler{middleware.RequireToken(opts.Tokens)}, hs...)
		}
		return hs
	}

	if opts.Health != nil {
		app.Get("/health", handlers.HandleHealthCheck(opts.Health))
	}
	if opts.Broker != nil {
		app.Get("/events", guard(handlers.Stream(opts.Broker))...)
	}

	app.Post("/login", handlers.Reported("Could not login user", h.LoginUser))
	app.Post("/users", handlers.Reported("Could not post user", h.PostUser))
	app.Get("/users/:email", handlers.Reported("Could not get user", h.GetUser))

	app.Get("/", guard(handlers.Reported("Could not fetch all todos", h.GetAllTodos))...)
	app.Get("/:id", guard(handlers.Reported("Could not fetch todo", h.GetTodo))...)
	app.Post("/:user_id", guard(handlers.Reported("Could not post todo", h.PostTodo))...)
	app.Patch("/:id", guard(handlers.Reported("Could not patch todo", h.PatchTodo))...)
	app.Delete("/", guard(handlers.Reported("Could not delete all todos", h.DeleteAllTodos))...)
	app.Delete("/:id", guard(handlers.Reported("Could not delete todo", h.DeleteTodo))...)
}
