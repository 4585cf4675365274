package models

// Todo là một công việc thuộc về một User
type Todo struct {
	ID        string `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
	Completed bool   `json:"completed"`
}

// TodoPatch chỉ chứa các trường client gửi lên; nil nghĩa là giữ nguyên
type TodoPatch struct {
	Title     *string `json:"title"`
	Order     *int    `json:"order"`
	Completed *bool   `json:"completed"`
}

// Empty cho biết patch không thay đổi trường nào
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Order == nil && p.Completed == nil
}

// CreateTodoRequest là body của POST /:user_id
type CreateTodoRequest struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}
