package queue_test

import (
	"testing"

	"github.com/malbeclabs/activity-scheduler/internal/queue"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	queue.Hook
	key  int64
	name string
}

func newTestItem(name string, key int64) *testItem {
	return &testItem{Hook: queue.NewHook(), key: key, name: name}
}

func (it *testItem) QueueKey() int64 { return it.key }

func TestQueue_OrdersByKey(t *testing.T) {
	t.Parallel()

	q := queue.New()
	a := newTestItem("a", 30)
	b := newTestItem("b", 10)
	c := newTestItem("c", 20)
	q.Push(a)
	q.Push(b)
	q.Push(c)

	require.Equal(t, 3, q.Len())

	var order []string
	for q.Len() > 0 {
		it, ok := q.PopFront()
		require.True(t, ok)
		order = append(order, it.(*testItem).name)
	}
	require.Equal(t, []string{"b", "c", "a"}, order)
}

func TestQueue_PeekDoesNotUnlink(t *testing.T) {
	t.Parallel()

	q := queue.New()
	a := newTestItem("a", 5)
	q.Push(a)

	head, ok := q.Peek()
	require.True(t, ok)
	require.Same(t, a, head)
	require.Equal(t, 1, q.Len())
	require.GreaterOrEqual(t, a.QueueIndex(), 0)
}

func TestQueue_RemoveMidHeap(t *testing.T) {
	t.Parallel()

	q := queue.New()
	items := []*testItem{
		newTestItem("a", 1),
		newTestItem("b", 2),
		newTestItem("c", 3),
		newTestItem("d", 4),
		newTestItem("e", 5),
	}
	for _, it := range items {
		q.Push(it)
	}

	removed := q.Remove(items[2]) // "c"
	require.True(t, removed)
	require.Equal(t, -1, items[2].QueueIndex())
	require.Equal(t, 4, q.Len())

	var order []string
	for q.Len() > 0 {
		it, _ := q.PopFront()
		order = append(order, it.(*testItem).name)
	}
	require.Equal(t, []string{"a", "b", "d", "e"}, order)
}

func TestQueue_RemoveUnlinkedReturnsFalse(t *testing.T) {
	t.Parallel()

	q := queue.New()
	a := newTestItem("a", 1)
	require.False(t, q.Remove(a))

	q.Push(a)
	require.True(t, q.Remove(a))
	require.False(t, q.Remove(a), "removing an already-unlinked item must be a no-op")
}

func TestQueue_DrainUnlinksEverything(t *testing.T) {
	t.Parallel()

	q := queue.New()
	a := newTestItem("a", 1)
	b := newTestItem("b", 2)
	q.Push(a)
	q.Push(b)

	items := q.Drain()
	require.Len(t, items, 2)
	require.Equal(t, 0, q.Len())
	for _, it := range items {
		require.Equal(t, -1, it.QueueIndex())
	}

	// Rebuilt queue works normally after a drain + re-push.
	q.Push(a)
	q.Push(b)
	require.Equal(t, 2, q.Len())
}

func TestQueue_EmptyQueuePeekAndPop(t *testing.T) {
	t.Parallel()

	q := queue.New()
	_, ok := q.Peek()
	require.False(t, ok)
	_, ok = q.PopFront()
	require.False(t, ok)
}
