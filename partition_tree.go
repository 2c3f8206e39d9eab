//
//
//

package fraudstat

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

func Compare[T Number](a interface{}, b interface{}) int {
	x, y := a.(T), b.(T)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// TreePartition_t is a multiset over a red-black tree, key = value, tree value = number of occurrences.
type TreePartition_t[T Number] struct {
	tree *redblacktree.Tree
	size int
	max  bool
}

func NewTreePartition[T Number](max bool) Partition[T] {
	return &TreePartition_t[T]{
		tree: redblacktree.NewWith(Compare[T]),
		max:  max,
	}
}

func (self *TreePartition_t[T]) Push(data T) {
	if count, ok := self.tree.Get(data); ok {
		self.tree.Put(data, count.(int)+1)
	} else {
		self.tree.Put(data, 1)
	}
	self.size++
}

func (self *TreePartition_t[T]) Pop() (data T) {
	data = self.Top()
	self.Remove(data)
	return
}

func (self *TreePartition_t[T]) Top() T {
	if self.max {
		return self.tree.Right().Key.(T)
	}
	return self.tree.Left().Key.(T)
}

func (self *TreePartition_t[T]) Remove(data T) bool {
	count, ok := self.tree.Get(data)
	if !ok {
		return false
	}
	if count.(int) > 1 {
		self.tree.Put(data, count.(int)-1)
	} else {
		self.tree.Remove(data)
	}
	self.size--
	return true
}

func (self *TreePartition_t[T]) Contains(data T) (ok bool) {
	_, ok = self.tree.Get(data)
	return
}

func (self *TreePartition_t[T]) Size() int {
	return self.size
}

func (self *TreePartition_t[T]) Range(f func(data T) bool) {
	for it := self.tree.Iterator(); it.Next(); {
		for i := it.Value().(int); i > 0; i-- {
			if f(it.Key().(T)) == false {
				return
			}
		}
	}
}
