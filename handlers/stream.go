package handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/biosecret/go-todos/events"
	"github.com/biosecret/go-todos/views"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/valyala/fasthttp"
)

const (
	keepAliveInterval = 15 * time.Second
	keepAliveMsg      = ":keepalive\n\n"
	connectedMsg      = ":connected\n\n"
	retryMillis       = 15000
)

func formatSSEMessage(eventType string, data any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	m := map[string]any{
		"data": data,
	}
	if err := enc.Encode(m); err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("event: %s\n", eventType))
	sb.WriteString(fmt.Sprintf("retry: %d\n", retryMillis))
	sb.WriteString(fmt.Sprintf("data: %s\n\n", strings.TrimRight(buf.String(), "\n")))

	return sb.String(), nil
}

// Stream mở một kết nối SSE nhận các thay đổi của todo.
// Mỗi todo được dựng view theo protocol/host của chính subscriber.
//
//	@Summary	Stream todo changes
//	@Tags		todos
//	@Produce	text/event-stream
//	@Success	200
//	@Router		/events [get]
func Stream(broker *events.Broker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("Transfer-Encoding", "chunked")

		o := origin(c)
		sub := broker.Subscribe()
		log.Infof("SSE subscriber connected (%d active)", broker.Len())

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			keepAliveTicker := time.NewTicker(keepAliveInterval)
			defer func() {
				keepAliveTicker.Stop()
				sub.Close()
				log.Info("SSE subscriber disconnected")
			}()

			// Flush ngay để client nhận header mà không phải chờ keepalive
			if _, err := w.WriteString(connectedMsg); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}

			for {
				select {
				case ev, ok := <-sub.C:
					if !ok {
						return
					}
					msg, err := formatSSEMessage(string(ev.Type), views.Todos(o, ev.Todos))
					if err != nil {
						log.Errorf("Error formatting sse message: %v", err)
						continue
					}
					if _, err := w.WriteString(msg); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				case <-keepAliveTicker.C:
					if _, err := w.WriteString(keepAliveMsg); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				}
			}
		}))

		return nil
	}
}
