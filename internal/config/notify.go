package config

import "sync"

// Event describes a configuration change. An empty Section means the whole
// tree was replaced (reload, reset or bulk save) and subscribers should
// re-read everything they care about.
type Event struct {
	Section string
	Key     string
	Value   any
}

// Handler receives change events. Handlers run synchronously on the
// goroutine that triggered the change and must not block.
type Handler func(Event)

// Notifier fans configuration change events out to subscribers.
type Notifier struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
}

func NewNotifier() *Notifier {
	return &Notifier{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns a function that removes it.
func (n *Notifier) Subscribe(h Handler) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.handlers[id] = h
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.handlers, id)
		n.mu.Unlock()
	}
}

func (n *Notifier) Publish(e Event) {
	n.mu.RLock()
	handlers := make([]Handler, 0, len(n.handlers))
	for _, h := range n.handlers {
		handlers = append(handlers, h)
	}
	n.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
