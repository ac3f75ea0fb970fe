package engine

// EventWithArg is a multi-cast signal carrying one value, such as the new
// selection on a selection change. Listeners run synchronously on the
// caller's goroutine in the order they were added.
type EventWithArg[T any] struct {
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// AddListener subscribes fn and returns a function that unsubscribes it.
// A nil fn is ignored and yields a no-op remover.
func (e *EventWithArg[T]) AddListener(fn func(T)) (remove func()) {
	if fn == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls every listener subscribed when it starts. Listeners added or
// removed during the call take effect from the next Invoke.
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}

// Event is a signal with no payload, used for gizmo drag start and finish.
type Event struct {
	inner EventWithArg[struct{}]
}

func (e *Event) AddListener(fn func()) (remove func()) {
	if fn == nil {
		return func() {}
	}
	return e.inner.AddListener(func(struct{}) { fn() })
}

func (e *Event) RemoveAllListeners() { e.inner.RemoveAllListeners() }

func (e *Event) Invoke() { e.inner.Invoke(struct{}{}) }

func (e *Event) ListenerCount() int { return e.inner.ListenerCount() }
