// Package events phát các thay đổi của todo tới SSE subscriber và MQTT broker.
package events

import (
	"context"
	"time"

	"github.com/biosecret/go-todos/models"
)

// Type là loại thay đổi
type Type string

const (
	TodoCreated  Type = "todo.created"
	TodoUpdated  Type = "todo.updated"
	TodoDeleted  Type = "todo.deleted"
	TodosCleared Type = "todos.cleared"
)

// Event mô tả một thay đổi đã được ghi thành công
type Event struct {
	Type  Type          `json:"type"`
	Todos []models.Todo `json:"todos"`
	At    time.Time     `json:"at"`
}

// New tạo Event tại thời điểm hiện tại
func New(t Type, todos ...models.Todo) Event {
	if todos == nil {
		todos = []models.Todo{}
	}
	return Event{Type: t, Todos: todos, At: time.Now().UTC()}
}

// Publisher nhận các Event sau khi ghi thành công
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }

// Discard bỏ qua mọi Event
var Discard Publisher = discard{}

// Multi gửi Event tới nhiều Publisher, trả về lỗi đầu tiên gặp phải
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var first error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
