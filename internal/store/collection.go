package store

type keyed interface {
	Key() uint
}

// nextID is max(existing id) + 1, or 1 for an empty collection. last is the
// highest id ever issued for the collection, so an id freed by deleting the
// newest record is not issued again.
func nextID[T keyed](items []T, last uint) uint {
	max := last
	for _, it := range items {
		if it.Key() > max {
			max = it.Key()
		}
	}
	return max + 1
}

func indexOf[T keyed](items []T, id uint) int {
	for i, it := range items {
		if it.Key() == id {
			return i
		}
	}
	return -1
}

func find[T keyed](items []T, id uint) (T, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// replaced returns a copy of items with items[i] swapped for v.
func replaced[T any](items []T, i int, v T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i] = v
	return out
}

func appended[T any](items []T, v T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

func without[T keyed](items []T, id uint) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Key() != id {
			out = append(out, it)
		}
	}
	return out
}
