package models

// User là tài khoản người dùng. PasswordHash không bao giờ được trả ra ngoài.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// NewUser là dữ liệu để tạo user, mật khẩu đã được hash
type NewUser struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// RegisterRequest là body của POST /users
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest là body của POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
