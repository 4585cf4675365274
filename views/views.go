// Package views dựng dữ liệu trả về cho client từ entity đã lưu.
// Các trường suy ra (url) chỉ tồn tại ở đây, không bao giờ được lưu.
package views

import (
	"net/url"

	"github.com/biosecret/go-todos/models"
)

// Origin là protocol và host mà client dùng để gọi API
type Origin struct {
	Protocol string
	Host     string
}

// TodoView là Todo kèm url suy ra
type TodoView struct {
	models.Todo
	URL string `json:"url"`
}

// UserView là phần công khai của User
type UserView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// URL trả về địa chỉ của một resource dưới origin
func (o Origin) URL(id string) string {
	u := url.URL{Scheme: o.Protocol, Host: o.Host, Path: "/" + id}
	return u.String()
}

// Todo dựng TodoView; không thay đổi todo đầu vào
func Todo(o Origin, t models.Todo) TodoView {
	return TodoView{Todo: t, URL: o.URL(t.ID)}
}

// Todos dựng danh sách TodoView, luôn trả slice khác nil
func Todos(o Origin, todos []models.Todo) []TodoView {
	out := make([]TodoView, 0, len(todos))
	for _, t := range todos {
		out = append(out, Todo(o, t))
	}
	return out
}

// User dựng UserView, bỏ password hash
func User(u models.User) UserView {
	return UserView{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}
