package store

// topic fans a collection snapshot out to its watchers. It is only touched
// while the store's writer lock is held, which gives every watcher the same
// commit order.
type topic[T any] struct {
	next uint64
	subs map[uint64]func([]T)
}

func (t *topic[T]) add(fn func([]T)) uint64 {
	if t.subs == nil {
		t.subs = make(map[uint64]func([]T))
	}
	t.next++
	t.subs[t.next] = fn
	return t.next
}

func (t *topic[T]) remove(id uint64) {
	delete(t.subs, id)
}

func (t *topic[T]) publish(snapshot []T) {
	for _, fn := range t.subs {
		fn(snapshot)
	}
}

func (t *topic[T]) size() int { return len(t.subs) }
