package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/events"
)

const (
	eventBufferSize   = 32
	keepAliveInterval = 15 * time.Second
)

// StreamEvents 以 Server-Sent Events 推送变更通知，客户端收到后重新读取状态。
// 缓冲区满时丢弃通知，不阻塞发布方。
func (a *API) StreamEvents(c *gin.Context) {
	queue := make(chan events.Event, eventBufferSize)
	unsubscribe := a.hub.SubscribeAll(func(event events.Event) {
		select {
		case queue <- event:
		default:
			a.log.Warn().Str("topic", event.Topic).Msg("dropping event for slow stream client")
		}
	})
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case event := <-queue:
			c.SSEvent(event.Topic, event)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"time": time.Now().UTC().Format(time.RFC3339)})
			return true
		case <-ctx.Done():
			// flush notifications published before the client went away
			for {
				select {
				case event := <-queue:
					c.SSEvent(event.Topic, event)
				default:
					return false
				}
			}
		}
	})
}
