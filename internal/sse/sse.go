package sse

import "sync"

// TopicAll получает все события независимо от варианта формулы.
const TopicAll = "all"

// Hub раздаёт сообщения подписчикам по теме.
type Hub struct {
	mu    sync.Mutex
	conns map[string][]chan string
	size  int
}

// NewHub создаёт hub, buffer задаёт ёмкость канала подписчика.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{conns: map[string][]chan string{}, size: buffer}
}

// Subscribe подписывает клиента на тему, возвращает канал и функцию отписки.
func (h *Hub) Subscribe(topic string) (<-chan string, func()) {
	ch := make(chan string, h.size)

	h.mu.Lock()
	h.conns[topic] = append(h.conns[topic], ch)
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			list := h.conns[topic]
			for i, c := range list {
				if c == ch {
					h.conns[topic] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
			if len(h.conns[topic]) == 0 {
				delete(h.conns, topic)
			}
		})
	}

	return ch, cancel
}

// Publish отсылает сообщение всем подписчикам темы.
// Возвращает, скольким подписчикам сообщение доставлено.
func (h *Hub) Publish(topic, msg string) int {
	h.mu.Lock()
	list := append([]chan string(nil), h.conns[topic]...)
	h.mu.Unlock()

	sent := 0
	for _, ch := range list {
		select {
		case ch <- msg:
			sent++
		default:
			// игнорируем, если канал забит
		}
	}
	return sent
}

func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[topic])
}
