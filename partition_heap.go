//
//
//

package fraudstat

import (
	"container/heap"
	"sort"
)

type heap_t[T Number] struct {
	data []T
	max  bool
}

func (self *heap_t[T]) Len() int {
	return len(self.data)
}

func (self *heap_t[T]) Less(i int, j int) bool {
	if self.max {
		return self.data[i] > self.data[j]
	}
	return self.data[i] < self.data[j]
}

func (self *heap_t[T]) Swap(i int, j int) {
	self.data[i], self.data[j] = self.data[j], self.data[i]
}

func (self *heap_t[T]) Push(x any) {
	self.data = append(self.data, x.(T))
}

func (self *heap_t[T]) Pop() any {
	n := len(self.data) - 1
	x := self.data[n]
	self.data = self.data[:n]
	return x
}

// HeapPartition_t removes arbitrary values with a linear scan.
type HeapPartition_t[T Number] struct {
	h heap_t[T]
}

func NewHeapPartition[T Number](max bool) Partition[T] {
	return &HeapPartition_t[T]{h: heap_t[T]{max: max}}
}

func (self *HeapPartition_t[T]) Push(data T) {
	heap.Push(&self.h, data)
}

func (self *HeapPartition_t[T]) Pop() T {
	return heap.Pop(&self.h).(T)
}

func (self *HeapPartition_t[T]) Top() T {
	return self.h.data[0]
}

func (self *HeapPartition_t[T]) find(data T) int {
	for i, v := range self.h.data {
		if v == data {
			return i
		}
	}
	return -1
}

func (self *HeapPartition_t[T]) Remove(data T) bool {
	if i := self.find(data); i >= 0 {
		heap.Remove(&self.h, i)
		return true
	}
	return false
}

func (self *HeapPartition_t[T]) Contains(data T) bool {
	return self.find(data) >= 0
}

func (self *HeapPartition_t[T]) Size() int {
	return len(self.h.data)
}

func (self *HeapPartition_t[T]) Range(f func(data T) bool) {
	temp := make([]T, len(self.h.data))
	copy(temp, self.h.data)
	sort.Slice(temp, func(i int, j int) bool { return temp[i] < temp[j] })
	for _, v := range temp {
		if f(v) == false {
			return
		}
	}
}
