// Package events is the in-process notification channel. Views subscribe to
// topics and re-read state from the store when a notification arrives; payloads
// are hints, never the source of truth.
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Topics published by the services.
const (
	TopicMedicineStatusChanged = "medicineStatusChanged"
	TopicWaterIntakeChanged    = "waterIntakeChanged"
	TopicDateSelected          = "dateSelected"
	TopicTabChanged            = "tabChanged"
	TopicCategoryTabChanged    = "categoryTabChanged"
	TopicProfileChanged        = "profileChanged"
	TopicForceRefresh          = "forceRefresh"
)

// Event 是一次通知
type Event struct {
	Topic     string    `json:"topic"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler 处理单个事件
type Handler func(Event)

// Bus 是发布/订阅接口
type Bus interface {
	Publish(topic string, payload any)
	Subscribe(topic string, handler Handler) (unsubscribe func())
	SubscribeAll(handler Handler) (unsubscribe func())
}

type subscriber struct {
	handler Handler
}

// Hub tracks subscribers per topic. Delivery is synchronous and in
// subscription order; handlers run outside the lock so they may publish or
// unsubscribe themselves.
type Hub struct {
	mu     sync.RWMutex
	topics map[string][]*subscriber // topic -> subscribers in order
	all    []*subscriber
	log    zerolog.Logger
	now    func() time.Time
}

// NewHub 创建空的 Hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		topics: make(map[string][]*subscriber),
		log:    logger.With().Str("component", "events").Logger(),
		now:    time.Now,
	}
}

// Subscribe registers handler for one topic.
func (h *Hub) Subscribe(topic string, handler Handler) func() {
	sub := &subscriber{handler: handler}

	h.mu.Lock()
	h.topics[topic] = append(h.topics[topic], sub)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.topics[topic] = remove(h.topics[topic], sub)
			if len(h.topics[topic]) == 0 {
				delete(h.topics, topic)
			}
		})
	}
}

// SubscribeAll registers handler for every topic.
func (h *Hub) SubscribeAll(handler Handler) func() {
	sub := &subscriber{handler: handler}

	h.mu.Lock()
	h.all = append(h.all, sub)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.all = remove(h.all, sub)
		})
	}
}

// Publish delivers an event to topic subscribers first, then to
// SubscribeAll subscribers.
func (h *Hub) Publish(topic string, payload any) {
	event := Event{Topic: topic, Payload: payload, Timestamp: h.now()}

	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.topics[topic])+len(h.all))
	targets = append(targets, h.topics[topic]...)
	targets = append(targets, h.all...)
	h.mu.RUnlock()

	for _, sub := range targets {
		h.deliver(sub, event)
	}
}

func (h *Hub) deliver(sub *subscriber, event Event) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("topic", event.Topic).Msg("event handler panicked")
		}
	}()
	sub.handler(event)
}

// SubscriberCount 返回某个主题的订阅者数量（不含 SubscribeAll）
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// ListenerCount 返回 SubscribeAll 订阅者数量
func (h *Hub) ListenerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

func remove(list []*subscriber, target *subscriber) []*subscriber {
	out := list[:0:0]
	for _, sub := range list {
		if sub != target {
			out = append(out, sub)
		}
	}
	return out
}

// Nop 丢弃所有事件，供不需要通知的调用方（如命令行）使用
type Nop struct{}

func (Nop) Publish(string, any) {}

func (Nop) Subscribe(string, Handler) func() { return func() {} }

func (Nop) SubscribeAll(Handler) func() { return func() {} }
