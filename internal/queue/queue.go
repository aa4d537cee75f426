// Package queue implements the ordered, O(log n)-removable queues the
// scheduling core keeps its pending items in (spec.md §9, "intrusive
// auto-unlinking queue"). It generalizes
// client/doublezerod/internal/liveness/scheduler.go's eventHeap/EventQueue
// from BFD TX/Detect events to any Item.
package queue

import "container/heap"

// Item is anything orderable by an int64 key that can also remember its
// own position in a Queue, so Remove doesn't need a linear scan. QueueKey
// returns an epoch-seconds value; lower sorts first.
type Item interface {
	QueueKey() int64
	QueueIndex() int
	SetQueueIndex(idx int)
}

// Hook is the embeddable back-pointer an Item stores to make itself
// removable in O(log n). The zero value is not ready for use; embed via
// NewHook or leave the field at index -1 by construction.
type Hook struct {
	idx int
}

// NewHook returns a Hook for an item not currently linked into any Queue.
func NewHook() Hook {
	return Hook{idx: -1}
}

func (h *Hook) QueueIndex() int       { return h.idx }
func (h *Hook) SetQueueIndex(idx int) { h.idx = idx }

type innerHeap []Item

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool { return h[i].QueueKey() < h[j].QueueKey() }

func (h innerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].SetQueueIndex(i)
	h[j].SetQueueIndex(j)
}

func (h *innerHeap) Push(x any) {
	it := x.(Item)
	it.SetQueueIndex(len(*h))
	*h = append(*h, it)
}

func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	it.SetQueueIndex(-1)
	return it
}

// Queue is a min-heap of Items ordered by QueueKey, supporting O(log n)
// removal of an arbitrary, still-linked Item.
type Queue struct {
	h innerHeap
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Len reports the number of items currently linked into the queue.
func (q *Queue) Len() int { return q.h.Len() }

// Push links item into the queue. item must not already be linked into
// this or any other Queue.
func (q *Queue) Push(item Item) {
	heap.Push(&q.h, item)
}

// Remove unlinks item from the queue. It reports false, doing nothing, if
// item is not currently linked (QueueIndex < 0) or is not actually the
// item stored at that index (a stale handle).
func (q *Queue) Remove(item Item) bool {
	idx := item.QueueIndex()
	if idx < 0 || idx >= q.h.Len() || q.h[idx] != item {
		return false
	}
	heap.Remove(&q.h, idx)
	return true
}

// Peek returns the item with the smallest QueueKey without unlinking it.
func (q *Queue) Peek() (Item, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return q.h[0], true
}

// PopFront unlinks and returns the item with the smallest QueueKey.
func (q *Queue) PopFront() (Item, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(Item), true
}

// Drain unlinks every item from the queue and returns them in arbitrary
// order, for callers that need to recompute every item's key (a
// TimeChanged-style rebuild) before reinserting.
func (q *Queue) Drain() []Item {
	items := make([]Item, len(q.h))
	copy(items, q.h)
	for _, it := range items {
		it.SetQueueIndex(-1)
	}
	q.h = q.h[:0]
	return items
}
