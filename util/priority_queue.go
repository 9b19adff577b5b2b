package util

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

type pqItem[T any, P constraints.Ordered] struct {
	value    T
	priority P
}

type pqHeap[T any, P constraints.Ordered] []pqItem[T, P]

func (self pqHeap[T, P]) Len() int           { return len(self) }
func (self pqHeap[T, P]) Less(i, j int) bool { return self[i].priority < self[j].priority }
func (self pqHeap[T, P]) Swap(i, j int)      { self[i], self[j] = self[j], self[i] }
func (self *pqHeap[T, P]) Push(x any) {
	*self = append(*self, x.(pqItem[T, P]))
}
func (self *pqHeap[T, P]) Pop() any {
	old := *self
	n := len(old)
	item := old[n-1]
	*self = old[:n-1]
	return item
}

// Min-priority queue.
type PriorityQueue[T any, P constraints.Ordered] struct {
	items *pqHeap[T, P]
}

func NewPriorityQueue[T any, P constraints.Ordered](cap int) PriorityQueue[T, P] {
	items := make(pqHeap[T, P], 0, cap)
	return PriorityQueue[T, P]{items: &items}
}

func (self PriorityQueue[T, P]) Enqueue(value T, priority P) {
	heap.Push(self.items, pqItem[T, P]{value, priority})
}

// Removes the item with the lowest priority, returns false if the queue is empty.
func (self PriorityQueue[T, P]) Dequeue() (T, bool) {
	if self.items.Len() == 0 {
		var t T
		return t, false
	}
	item := heap.Pop(self.items).(pqItem[T, P])
	return item.value, true
}

func (self PriorityQueue[T, P]) Length() int {
	return self.items.Len()
}

//*******************************************
// flags
//*******************************************

// Per-index state with a default value, cleared in O(touched) by Reset.
type Flags[T any] struct {
	flags   Array[T]
	touched Array[bool]
	changed List[int32]
	_null   T
}

func NewFlags[T any](size int32, null T) Flags[T] {
	flags := NewArray[T](int(size))
	flags.Fill(null)
	return Flags[T]{
		flags:   flags,
		touched: NewArray[bool](int(size)),
		changed: NewList[int32](100),
		_null:   null,
	}
}

func (self *Flags[T]) Get(id int32) *T {
	if !self.touched[id] {
		self.touched[id] = true
		self.changed.Add(id)
	}
	return &self.flags[id]
}

// Returns the flag without marking it as touched.
func (self *Flags[T]) Peek(id int32) T {
	return self.flags[id]
}

func (self *Flags[T]) IsTouched(id int32) bool {
	return self.touched[id]
}

// Ids touched since the last reset, in touch order.
func (self *Flags[T]) Touched() List[int32] {
	return self.changed
}

func (self *Flags[T]) Reset() {
	for _, id := range self.changed {
		self.flags[id] = self._null
		self.touched[id] = false
	}
	self.changed = self.changed[:0]
}
