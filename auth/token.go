package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/biosecret/go-todos/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL là thời hạn cố định của access token
const TokenTTL = time.Hour

// Identity là thông tin người dùng được nhúng vào token
type Identity struct {
	UserID int64
	Email  string
}

// Claims là payload của JWT
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens phát hành và xác thực JWT ký HS256.
// Khoá ký được nạp một lần khi khởi động và không đổi trong suốt vòng đời process.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

// NewTokens tạo Tokens từ secret; secret rỗng là lỗi cấu hình
func NewTokens(secret string) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &Tokens{secret: []byte(secret), now: time.Now}, nil
}

// Issue tạo token hết hạn sau TokenTTL
func (t *Tokens) Issue(id Identity) (string, error) {
	now := t.now()
	claims := Claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	if id.UserID != 0 {
		claims.Subject = strconv.FormatInt(id.UserID, 10)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", apperr.Internal("could not sign token", err)
	}
	return signed, nil
}

// Verify kiểm tra chữ ký và thời hạn, trả về claims nếu hợp lệ
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, apperr.InvalidToken(err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, apperr.InvalidToken(errors.New("token carries no identity"))
	}
	return claims, nil
}
