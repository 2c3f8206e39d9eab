//
//
//

package fraudstat

// value will be compared with greater and less operators
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Partition is one half of the window.
// max partition returns the largest value from Top() and Pop(), min partition the smallest.
type Partition[T Number] interface {
	Push(data T)
	Pop() T
	Top() T
	// removes exactly one occurrence
	Remove(data T) bool
	Contains(data T) bool
	Size() int
	// ascending order
	Range(f func(data T) bool)
}

type NewPartition_t[T Number] func(max bool) Partition[T]

// windows up to this size use heap partitions
const HeapWindowLimit = 64

func PartitionFor[T Number](window int) NewPartition_t[T] {
	if window <= HeapWindowLimit {
		return NewHeapPartition[T]
	}
	return NewTreePartition[T]
}
