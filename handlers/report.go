package handlers

import (
	"github.com/biosecret/go-todos/apperr"
	"github.com/biosecret/go-todos/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Reported bọc một route handler: lỗi có message công khai (400/401/404) được trả
// nguyên văn, mọi lỗi khác được ghi log kèm nguyên nhân và trả về 500 chung chung.
// Mỗi request chỉ nhận đúng một response.
func Reported(message string, h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := h(c)
		if err == nil {
			return nil
		}

		c.Response().ResetBody()
		if public, ok := apperr.PublicMessage(err); ok {
			return c.Status(apperr.KindOf(err).Status()).JSON(fiber.Map{"error": public})
		}

		log.Errorf("%s%s caused by: %v", logPrefix(c), message, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Oops! " + message + "."})
	}
}

// logPrefix gắn request id và email của token (khi route có guard) vào dòng log
func logPrefix(c *fiber.Ctx) string {
	var prefix string
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		prefix = "[" + rid + "] "
	}
	if claims, ok := middleware.ClaimsFrom(c); ok {
		prefix += "(" + claims.Email + ") "
	}
	return prefix
}

// ErrorHandler là lưới an toàn cho lỗi không đi qua Reported (route không tồn tại, panic...)
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}
	log.Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error."})
}
