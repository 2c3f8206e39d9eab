//
//
//

package fraudstat

// Tracker_t keeps the window split in two halves:
// low holds the smaller values with the largest on top, high the larger values with the smallest on top.
// low.Size() == high.Size() or low.Size() == high.Size()+1
type Tracker_t[T Number] struct {
	low  Partition[T]
	high Partition[T]
}

func NewTracker[T Number](new_partition NewPartition_t[T]) (self *Tracker_t[T]) {
	self = &Tracker_t[T]{
		low:  new_partition(true),
		high: new_partition(false),
	}
	return
}

func (self *Tracker_t[T]) Add(data T) {
	if self.low.Size() == 0 || data <= self.low.Top() {
		self.low.Push(data)
	} else {
		self.high.Push(data)
	}
	self.rebalance()
}

// Remove deletes one occurrence of data, equal values are not distinguished
func (self *Tracker_t[T]) Remove(data T) (ok bool) {
	if self.low.Contains(data) {
		ok = self.low.Remove(data)
	} else {
		ok = self.high.Remove(data)
	}
	self.rebalance()
	return
}

// add and remove change size by one so single move is enough
func (self *Tracker_t[T]) rebalance() {
	if self.low.Size() > self.high.Size()+1 {
		self.high.Push(self.low.Pop())
	} else if self.high.Size() > self.low.Size() {
		self.low.Push(self.high.Pop())
	}
}

// med, size
func (self *Tracker_t[T]) Median() (med float64, size int) {
	if size = self.Size(); size == 0 {
		return
	}
	if self.low.Size() > self.high.Size() {
		med = float64(self.low.Top())
	} else {
		med = (float64(self.low.Top()) + float64(self.high.Top())) / 2
	}
	return
}

func (self *Tracker_t[T]) Size() int {
	return self.low.Size() + self.high.Size()
}

// Range walks the window in ascending order
func (self *Tracker_t[T]) Range(f func(data T) bool) {
	next := true
	self.low.Range(func(data T) bool {
		next = f(data)
		return next
	})
	if next {
		self.high.Range(f)
	}
}
