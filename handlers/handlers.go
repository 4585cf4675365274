package handlers

import (
	"context"
	"time"

	"github.com/biosecret/go-todos/auth"
	"github.com/biosecret/go-todos/database"
	"github.com/biosecret/go-todos/events"
	"github.com/biosecret/go-todos/views"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"
)

const publishTimeout = 5 * time.Second

// PasswordHasher hash và kiểm tra mật khẩu
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// TokenIssuer phát hành bearer token khi đăng nhập
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// Handlers giữ các dependency dùng chung giữa các route
type Handlers struct {
	repo      database.Repository
	passwords PasswordHasher
	tokens    TokenIssuer
	events    events.Publisher
}

// New tạo Handlers; publisher nil nghĩa là không phát sự kiện
func New(repo database.Repository, passwords PasswordHasher, tokens TokenIssuer, publisher events.Publisher) *Handlers {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Handlers{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		events:    publisher,
	}
}

// origin lấy protocol và host của request hiện tại.
// Chuỗi được copy vì fasthttp tái sử dụng buffer sau khi handler trả về.
func origin(c *fiber.Ctx) views.Origin {
	return views.Origin{
		Protocol: utils.CopyString(c.Protocol()),
		Host:     utils.CopyString(c.Hostname()),
	}
}

// publish gửi sự kiện ở background; lỗi chỉ được ghi log
func (h *Handlers) publish(ev events.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := h.events.Publish(ctx, ev); err != nil {
			log.Warnf("could not publish %s event: %v", ev.Type, err)
		}
	}()
}
