package database

import (
	"crypto/rand"
	"encoding/hex"
)

// maxIDAttempts là số lần thử lại khi ID của todo bị trùng
const maxIDAttempts = 3

// GenerateTodoID tạo ID ngẫu nhiên 16 byte (32 ký tự hex)
func GenerateTodoID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
