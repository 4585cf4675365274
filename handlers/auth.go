package handlers

import (
	"github.com/biosecret/go-todos/apperr"
	"github.com/biosecret/go-todos/auth"
	"github.com/biosecret/go-todos/models"
	"github.com/biosecret/go-todos/views"
	"github.com/gofiber/fiber/v2"
)

// PostUser đăng ký người dùng mới
//
//	@Summary	Register a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.RegisterRequest	true	"New user"
//	@Success	201		{object}	map[string]any
//	@Failure	400		{object}	map[string]string
//	@Failure	500		{object}	map[string]string
//	@Router		/users [post]
func (h *Handlers) PostUser(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body.")
	}
	if req.Email == "" || req.Password == "" {
		return apperr.Validation("Email and password are required.")
	}

	// Hash mật khẩu trước khi lưu
	hash, err := h.passwords.Hash(req.Password)
	if err != nil {
		return err
	}

	user, err := h.repo.CreateUser(c.UserContext(), models.NewUser{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    fiber.Map{"email": user.Email},
	})
}

// LoginUser kiểm tra thông tin đăng nhập và trả về JWT
//
//	@Summary	Log in
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.LoginRequest	true	"Credentials"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	map[string]string
//	@Failure	401		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/login [post]
func (h *Handlers) LoginUser(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body.")
	}
	if req.Email == "" || req.Password == "" {
		return apperr.Validation("Email and password are required.")
	}

	user, err := h.repo.GetUserByEmail(c.UserContext(), req.Email)
	if err != nil {
		return err
	}

	ok, err := h.passwords.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Unauthorized("Invalid credentials.")
	}

	token, err := h.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// GetUser trả về thông tin công khai của user theo email
//
//	@Summary	Get a user by email
//	@Tags		users
//	@Produce	json
//	@Param		email	path		string	true	"Email"
//	@Success	200		{object}	views.UserView
//	@Failure	404		{object}	map[string]string
//	@Router		/users/{email} [get]
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	user, err := h.repo.GetUserByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(views.User(user))
}
