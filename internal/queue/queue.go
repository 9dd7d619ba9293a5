// Package queue defines a small FIFO queue used for token push-back.
package queue

// Queue keeps items in a ring buffer, the zero value is not usable, use New.
type Queue[T any] struct {
	items      []T
	head, size int
	zero       T
}

const minCap = 4

func New[T any](items ...T) *Queue[T] {
	c := minCap
	for c < len(items) {
		c <<= 1
	}
	q := &Queue[T]{items: make([]T, c)}
	for _, item := range items {
		q.Append(item)
	}
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Queue[T]) Len() int {
	return q.size
}

func (q *Queue[T]) Append(item T) *Queue[T] {
	q.grow()
	q.items[q.index(q.size)] = item
	q.size++
	return q
}

// Peek returns the first item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.size == 0 {
		return q.zero, false
	}
	return q.items[q.head], true
}

// First removes and returns the first item.
func (q *Queue[T]) First() (T, bool) {
	if q.size == 0 {
		return q.zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = q.zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return result, true
}

func (q *Queue[T]) index(i int) int {
	return (q.head + i) % len(q.items)
}

func (q *Queue[T]) grow() {
	if q.size < len(q.items) {
		return
	}

	items := make([]T, len(q.items)<<1)
	for i := 0; i < q.size; i++ {
		items[i] = q.items[q.index(i)]
	}
	q.items = items
	q.head = 0
}
