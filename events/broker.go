package events

import (
	"context"
	"slices"
	"sync"
)

// subscriberBuffer là số Event tối đa chờ cho một subscriber chậm
const subscriberBuffer = 16

// Subscription là một kết nối SSE đang lắng nghe
type Subscription struct {
	C      <-chan Event
	ch     chan Event
	broker *Broker
}

// Close huỷ đăng ký; gọi nhiều lần không sao
func (s *Subscription) Close() {
	s.broker.remove(s)
}

// Broker phân phát Event tới các subscriber trong process
type Broker struct {
	mu   sync.Mutex
	subs []*Subscription
}

func NewBroker() *Broker {
	return &Broker{}
}

// Subscribe đăng ký một subscriber mới
func (b *Broker) Subscribe() *Subscription {
	ch := make(chan Event, subscriberBuffer)
	s := &Subscription{C: ch, ch: ch, broker: b}

	b.mu.Lock()
	b.subs = append(b.subs, s)
	b.mu.Unlock()
	return s
}

func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := slices.Index(b.subs, s)
	if idx == -1 {
		return
	}
	b.subs[idx] = nil
	b.subs = slices.Delete(b.subs, idx, idx+1)
	close(s.ch)
}

// Len trả về số subscriber hiện tại
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish không chặn: subscriber có buffer đầy sẽ bị bỏ qua Event này
func (b *Broker) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs {
		select {
		case s.ch <- ev:
		default:
		}
	}
	return nil
}
