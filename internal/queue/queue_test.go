package queue

import (
	"fmt"
	"testing"

	. "github.com/skinnyjames/hokusai-pocket/internal/test"
)

// expectItems drains q.
func expectItems(t *testing.T, q *Queue[int], expected ...int) {
	t.Helper()
	ExpectInt(t, len(expected), q.Len())
	for _, item := range expected {
		got, f := q.First()
		ExpectBool(t, true, f)
		ExpectInt(t, item, got)
	}
	ExpectBool(t, true, q.IsEmpty())
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	ExpectBool(t, true, q.IsEmpty())
	ExpectInt(t, minCap, len(q.items))
	_, f := q.First()
	ExpectBool(t, false, f)
	_, f = q.Peek()
	ExpectBool(t, false, f)
}

func TestPrefilled(t *testing.T) {
	samples := [][]int{{1}, {1, 2, 3, 4}, {1, 2, 3, 4, 5, 6, 7, 8, 9}}
	for i, s := range samples {
		t.Run(fmt.Sprintf("sample #%d", i), func(t *testing.T) {
			q := New[int](s...)
			Assert(t, len(q.items) >= len(s), "expecting capacity >= %d, got %d", len(s), len(q.items))
			expectItems(t, q, s...)
		})
	}
}

func TestAppend(t *testing.T) {
	q := New[int]()
	q.Append(0).Append(1).Append(2)
	for i := 3; i <= 10; i++ {
		q.Append(i)
	}
	expectItems(t, q, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
}

func TestFirstPeek(t *testing.T) {
	q := New[int](1, 2, 3)
	i, f := q.First()
	ExpectBool(t, true, f)
	ExpectInt(t, 1, i)

	i, f = q.Peek()
	ExpectBool(t, true, f)
	ExpectInt(t, 2, i)
	ExpectInt(t, 2, q.Len())
	expectItems(t, q, 2, 3)
}

func TestWrapAround(t *testing.T) {
	q := New[int]()
	for i := 0; i < 3; i++ {
		q.Append(i)
	}
	q.First()
	q.First()
	for i := 3; i < 6; i++ {
		q.Append(i)
	}
	ExpectInt(t, minCap, len(q.items))

	q.Append(6)
	Assert(t, len(q.items) > minCap, "expecting grown buffer, got %d", len(q.items))
	expectItems(t, q, 2, 3, 4, 5, 6)
}
