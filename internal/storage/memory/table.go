package memory

// table keeps rows keyed by id and remembers insertion order, which is the
// listing order of this backend.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) insert(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, key := range t.order {
		if key == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// find returns the first row matching match, in insertion order.
func (t *table[T]) find(match func(T) bool) (T, bool) {
	for _, id := range t.order {
		if v := t.rows[id]; match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// filter returns every row matching match, in insertion order.
func (t *table[T]) filter(match func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		if v := t.rows[id]; match == nil || match(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) count(match func(T) bool) int64 {
	var n int64
	for _, v := range t.rows {
		if match(v) {
			n++
		}
	}
	return n
}
