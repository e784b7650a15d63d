package events

// ChannelEvent fans a value out to registered channels. Sends never block:
// a listener whose buffer is full misses that value, which suits display
// refreshes where only the newest value matters.
type ChannelEvent[T any] struct {
	set *listenerSet[chan<- T, T]
}

// NewChannelEvent creates a ChannelEvent. With replayLast set, a channel
// registered after the first Notify is sent the latest value straight away.
func NewChannelEvent[T any](replayLast bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{set: newListenerSet[chan<- T, T](replayLast)}
}

// Listen registers ch and returns its unregister func
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("ChannelEvent: channel cannot be nil")
	}

	id, last, replay := e.set.add(ch)
	if replay {
		trySend(ch, last)
	}
	return e.set.remover(id)
}

// Notify offers value to every registered channel and reports how many accepted it
func (e *ChannelEvent[T]) Notify(value T) int {
	delivered := 0
	for _, ch := range e.set.publish(value) {
		if trySend(ch, value) {
			delivered++
		}
	}
	return delivered
}

func (e *ChannelEvent[T]) ListenerCount() int {
	return e.set.count()
}

func trySend[T any](ch chan<- T, value T) bool {
	select {
	case ch <- value:
		return true
	default:
		return false
	}
}
