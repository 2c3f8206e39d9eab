//
//
//

package fraudstat

import (
	"sync"
	"time"

	"github.com/ondi/go-cache"
	"github.com/ondi/go-unique"
)

func NoEvict[Key_t comparable](key Key_t, value *Detector_t[float64]) {}

// Storage_t keeps one detector per key (customer, card, account).
// Every call holds the lock for the whole evaluate, evict, insert sequence.
type Storage_t[Key_t comparable] struct {
	mx            sync.Mutex
	detectors     *unique.Often_t[Key_t, *Detector_t[float64]]
	window        int
	factor        float64
	ttl           time.Duration
	alerts_limit  int
	new_partition NewPartition_t[float64]
}

func NewStorage[Key_t comparable](limit_keys int, window int, factor float64, ttl time.Duration, alerts_limit int, evict func(key Key_t, value *Detector_t[float64])) (self *Storage_t[Key_t]) {
	self = &Storage_t[Key_t]{
		detectors:     unique.NewOften(limit_keys, evict),
		window:        window,
		factor:        factor,
		ttl:           ttl,
		alerts_limit:  alerts_limit,
		new_partition: PartitionFor[float64](window),
	}
	return
}

// Observe feeds value to the key detector and returns the state right after the insert
func (self *Storage_t[Key_t]) Observe(key Key_t, ts time.Time, value float64) (alert Alert_t[float64], ok bool, state State_t[float64]) {
	self.mx.Lock()
	detector, _ := self.detectors.Create(
		key,
		func(p **Detector_t[float64]) {
			*p = NewDetector(self.window, self.factor, self.ttl, self.alerts_limit, self.new_partition)
		},
		func(**Detector_t[float64]) {},
	)
	alert, ok = detector.Add(ts, value)
	state = detector.Value(ts)
	self.mx.Unlock()
	return
}

func (self *Storage_t[Key_t]) Get(ts time.Time, key Key_t) (out State_t[float64], ok bool) {
	self.mx.Lock()
	detector, ok := self.detectors.Get(key)
	if ok {
		out = detector.Value(ts)
	}
	self.mx.Unlock()
	return
}

func (self *Storage_t[Key_t]) Alerts(key Key_t) (out []Alert_t[float64], ok bool) {
	self.mx.Lock()
	detector, ok := self.detectors.Get(key)
	if ok {
		out = detector.Alerts()
	}
	self.mx.Unlock()
	return
}

func (self *Storage_t[Key_t]) Remove(key Key_t) (ok bool) {
	self.mx.Lock()
	ok = self.detectors.Remove(key)
	self.mx.Unlock()
	return
}

func (self *Storage_t[Key_t]) RemoveRange(cmp func(Key_t) bool) {
	self.mx.Lock()
	self.detectors.Range(
		func(key Key_t, value *Detector_t[float64]) bool {
			if cmp(key) {
				self.detectors.Remove(key)
			}
			return true
		},
	)
	self.mx.Unlock()
}

func (self *Storage_t[Key_t]) Range(ts time.Time, f func(key Key_t, res State_t[float64]) bool) {
	self.mx.Lock()
	self.detectors.Range(
		func(key Key_t, value *Detector_t[float64]) bool {
			return f(key, value.Value(ts))
		},
	)
	self.mx.Unlock()
}

func (self *Storage_t[Key_t]) RangeSort(ts time.Time, order cache.Less_t[Key_t, *Detector_t[float64]], f func(key Key_t, res State_t[float64]) bool) {
	self.mx.Lock()
	self.detectors.RangeSort(
		order,
		func(key Key_t, value *Detector_t[float64]) bool {
			return f(key, value.Value(ts))
		},
	)
	self.mx.Unlock()
}

func LessAlerts[Key_t comparable](a *cache.Value_t[Key_t, *Detector_t[float64]], b *cache.Value_t[Key_t, *Detector_t[float64]]) bool {
	return a.Value.alerts_total < b.Value.alerts_total
}

func LessMedian[Key_t comparable](a *cache.Value_t[Key_t, *Detector_t[float64]], b *cache.Value_t[Key_t, *Detector_t[float64]]) bool {
	med_a, _ := a.Value.tracker.Median()
	med_b, _ := b.Value.tracker.Median()
	return med_a < med_b
}
