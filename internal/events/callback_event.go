package events

// CallbackEvent fans a value out to registered callbacks, synchronously on the
// notifying goroutine
type CallbackEvent[T any] struct {
	set *listenerSet[func(T), T]
}

// NewCallbackEvent creates a CallbackEvent. With replayLast set, a listener
// registered after the first Notify is called straight away with the latest value.
func NewCallbackEvent[T any](replayLast bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{set: newListenerSet[func(T), T](replayLast)}
}

// Listen registers callback and returns its unregister func, which is safe to call more than once
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("CallbackEvent: callback cannot be nil")
	}

	id, last, replay := e.set.add(callback)
	if replay {
		callback(last)
	}
	return e.set.remover(id)
}

// Notify calls every registered callback with value
func (e *CallbackEvent[T]) Notify(value T) {
	for _, callback := range e.set.publish(value) {
		callback(value)
	}
}

func (e *CallbackEvent[T]) ListenerCount() int {
	return e.set.count()
}
