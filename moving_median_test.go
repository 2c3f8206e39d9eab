//
// go test -run Test_median40 -v -count=1
//

package fraudstat

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/JaderDias/movingmedian"
	"github.com/montanaflynn/stats"
	"gotest.tools/assert"
)

var partitions = map[string]NewPartition_t[int]{
	"heap": NewHeapPartition[int],
	"tree": NewTreePartition[int],
}

func Values[T Number](p Partition[T]) (res []T) {
	p.Range(func(data T) bool {
		res = append(res, data)
		return true
	})
	return
}

func RealMedian[T Number](window []T) float64 {
	temp := make([]float64, 0, len(window))
	for _, v := range window {
		temp = append(temp, float64(v))
	}
	med, _ := stats.Median(temp)
	return med
}

func check_state[T Number](m *Tracker_t[T], window []T) (res string) {
	low, high := Values(m.low), Values(m.high)
	if len(low) != m.low.Size() || len(high) != m.high.Size() {
		return fmt.Sprintf("RANGE CHECK: low=%v/%v, high=%v/%v", len(low), m.low.Size(), len(high), m.high.Size())
	}
	if m.low.Size() != m.high.Size() && m.low.Size() != m.high.Size()+1 {
		return fmt.Sprintf("SIZE CHECK: low=%v, high=%v", m.low.Size(), m.high.Size())
	}
	if m.Size() != len(window) {
		return fmt.Sprintf("WINDOW CHECK: size=%v, window=%v", m.Size(), len(window))
	}
	if len(low) > 0 && len(high) > 0 && low[len(low)-1] > high[0] {
		return fmt.Sprintf("ORDER CHECK: low=%v, high=%v", low, high)
	}
	for i := 1; i < len(low); i++ {
		if low[i-1] > low[i] {
			return fmt.Sprintf("SORT CHECK: low=%v", low)
		}
	}
	if len(window) > 0 {
		if med, _ := m.Median(); med != RealMedian(window) {
			return fmt.Sprintf("MEDIAN CHECK: median=%v, real=%v, window=%v", med, RealMedian(window), window)
		}
	}
	return
}

func Test_median10(t *testing.T) {
	for name, p := range partitions {
		m := NewTracker(p)
		var window []int
		for i := 0; i < 1000; i++ {
			m.Add(10)
			window = append(window, 10)
			if len(window) > 10 {
				assert.Assert(t, m.Remove(window[0]), name)
				window = window[1:]
			}
			check := check_state(m, window)
			assert.Assert(t, len(check) == 0, name+" "+check)
		}
		med, size := m.Median()
		assert.Assert(t, med == 10, med)
		assert.Assert(t, size == 10, size)
	}
}

func Test_median20(t *testing.T) {
	for name, p := range partitions {
		m := NewTracker(p)
		var window []int
		for i := 0; i < 1000; i++ {
			m.Add(i)
			window = append(window, i)
			if len(window) > 11 {
				assert.Assert(t, m.Remove(window[0]), name)
				window = window[1:]
			}
			check := check_state(m, window)
			assert.Assert(t, len(check) == 0, name+" "+check)
		}
		med, _ := m.Median()
		assert.Assert(t, med == 994, fmt.Sprintf("%v TEST=%v", name, med))
	}
}

func Test_median30(t *testing.T) {
	for name, p := range partitions {
		m := NewTracker(p)
		var window []int
		for i := 1000; i > 0; i-- {
			m.Add(i)
			window = append(window, i)
			if len(window) > 10 {
				assert.Assert(t, m.Remove(window[0]), name)
				window = window[1:]
			}
			check := check_state(m, window)
			assert.Assert(t, len(check) == 0, name+" "+check)
		}
		med, _ := m.Median()
		assert.Assert(t, med == 5.5, fmt.Sprintf("%v TEST=%v", name, med))
	}
}

func Test_median40(t *testing.T) {
	seed := time.Now().UnixNano()
	for _, size := range []int{1, 2, 7, 20, 21} {
		for name, p := range partitions {
			rnd := rand.New(rand.NewSource(seed))
			m := NewTracker(p)
			mm := movingmedian.NewMovingMedian(size)
			var window []int
			for i := 0; i < 5000; i++ {
				v := rnd.Intn(100)
				m.Add(v)
				mm.Push(float64(v))
				window = append(window, v)
				if len(window) > size {
					assert.Assert(t, m.Remove(window[0]), name)
					window = window[1:]
				}
				check := check_state(m, window)
				assert.Assert(t, len(check) == 0, fmt.Sprintf("seed=%v, size=%v, %v %v", seed, size, name, check))
				if len(window) == size {
					med, _ := m.Median()
					assert.Assert(t, med == mm.Median(), fmt.Sprintf("seed=%v, size=%v, %v TEST=%v, ORACLE=%v", seed, size, name, med, mm.Median()))
				}
			}
		}
	}
}

func Test_median50(t *testing.T) {
	size := 21
	seed := time.Now().UnixNano()
	for name, p := range partitions {
		rnd := rand.New(rand.NewSource(seed))
		m := NewTracker(p)
		var window []int
		for i := 0; i < size; i++ {
			v := rnd.Intn(10)
			m.Add(v)
			window = append(window, v)
		}
		// drain in arrival order
		for len(window) > 0 {
			assert.Assert(t, m.Remove(window[0]), name)
			window = window[1:]
			check := check_state(m, window)
			assert.Assert(t, len(check) == 0, fmt.Sprintf("seed=%v, %v %v", seed, name, check))
		}
		med, size := m.Median()
		assert.Assert(t, med == 0 && size == 0, med)
		assert.Assert(t, m.Remove(5) == false)
	}
}

func Test_rebalance10(t *testing.T) {
	for name, p := range partitions {
		m := NewTracker(p)
		for _, v := range []int{5, 1, 9, 3, 7, 3} {
			m.Add(v)
			low, high := Values(m.low), Values(m.high)
			m.rebalance()
			m.rebalance()
			assert.DeepEqual(t, low, Values(m.low))
			assert.DeepEqual(t, high, Values(m.high))
			t.Logf("%v low=%v, high=%v", name, low, high)
		}
	}
}

func Test_range10(t *testing.T) {
	for name, p := range partitions {
		m := NewTracker(p)
		for _, v := range []int{4, 8, 1, 8, 2, 6} {
			m.Add(v)
		}
		var res []int
		m.Range(func(data int) bool {
			res = append(res, data)
			return len(res) < 4
		})
		assert.DeepEqual(t, res, []int{1, 2, 4, 6})
		med, size := m.Median()
		assert.Assert(t, med == 5 && size == 6, fmt.Sprintf("%v med=%v, size=%v", name, med, size))
	}
}

func Test_float10(t *testing.T) {
	m := NewTracker(NewTreePartition[float64])
	m.Add(1.5)
	m.Add(2)
	med, _ := m.Median()
	assert.Assert(t, med == 1.75, med)
	m.Add(-3.25)
	med, _ = m.Median()
	assert.Assert(t, med == 1.5, med)
}
