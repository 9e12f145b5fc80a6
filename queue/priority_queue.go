// Package queue provides a generic priority queue implementation based on the internal heap
package queue

// Priority queue based on
// https://golang.org/pkg/container/heap/#example__priorityQueue

import (
	"container/heap"
)

// innerPriorityQueue implements heap.Interface over the queued values
type innerPriorityQueue[E any] struct {
	items   []E
	cmpFunc func(E, E) int
}

// PriorityQueue is a min-heap ordered by a cmp style compare function.
// The item with the lowest value according to cmpFunc is at the head.
type PriorityQueue[E any] struct {
	ipq innerPriorityQueue[E]
}

// NewPriorityQueue creates a new heap based PriorityQueue using cmpFunc as the comparison function.
// cmpFunc returns a negative number when a should leave the queue before b.
func NewPriorityQueue[E any](cmpFunc func(a, b E) int) *PriorityQueue[E] {
	return NewPriorityQueueSize(cmpFunc, 0)
}

// NewPriorityQueueSize is like NewPriorityQueue but preallocates room for n items
func NewPriorityQueueSize[E any](cmpFunc func(a, b E) int, n int) *PriorityQueue[E] {
	var pq PriorityQueue[E]
	pq.ipq.items = make([]E, 0, n)
	pq.ipq.cmpFunc = cmpFunc
	heap.Init(&pq.ipq)
	return &pq
}

// Len returns the number of items in the queue
func (pq *PriorityQueue[E]) Len() int {
	return pq.ipq.Len()
}

// Push adds x to the queue
func (pq *PriorityQueue[E]) Push(x E) {
	heap.Push(&pq.ipq, x)
}

// Pop removes and returns the next item in the queue
func (pq *PriorityQueue[E]) Pop() E {
	return heap.Pop(&pq.ipq).(E)
}

// Peek returns the next item in the queue without removing it
func (pq *PriorityQueue[E]) Peek() E {
	return pq.ipq.items[0]
}

// PeekUpdate replaces the head of the queue with x and restores the heap order.
// It is cheaper than a Pop followed by a Push.
func (pq *PriorityQueue[E]) PeekUpdate(x E) {
	pq.ipq.items[0] = x
	heap.Fix(&pq.ipq, 0)
}

func (pq *innerPriorityQueue[E]) Len() int {
	return len(pq.items)
}

func (pq *innerPriorityQueue[E]) Less(i, j int) bool {
	return pq.cmpFunc(pq.items[i], pq.items[j]) < 0
}

func (pq *innerPriorityQueue[E]) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

func (pq *innerPriorityQueue[E]) Push(x any) {
	pq.items = append(pq.items, x.(E))
}

func (pq *innerPriorityQueue[E]) Pop() any {
	old := pq.items
	n := len(old)
	x := old[n-1]
	var zero E
	old[n-1] = zero // drop the reference for the GC
	pq.items = old[0 : n-1]
	return x
}
