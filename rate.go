//
//
//

package fraudstat

import (
	"time"

	"github.com/ondi/go-cache"
)

// Rate_t counts events over the last period split into buckets
type Rate_t struct {
	cx       *cache.Cache_t[time.Time, int64] // key = bucket expiration
	period   time.Duration
	truncate time.Duration
	total    int64
	buckets  int
	last     time.Time // newest ts seen
}

func NewRate(buckets int, period time.Duration) (self *Rate_t) {
	self = &Rate_t{
		cx:       cache.New[time.Time, int64](),
		period:   period,
		truncate: period / time.Duration(buckets),
		buckets:  buckets,
	}
	return
}

// Add counts ts unless its bucket has already expired relative to the newest ts seen
func (self *Rate_t) Add(ts time.Time) int64 {
	if ts.After(self.last) {
		self.last = ts
	}
	self.Evict(self.last)
	key := ts.Add(self.period).Truncate(self.truncate)
	if !self.last.Before(key) {
		return self.total
	}
	self.cx.CreateBack(
		key,
		func(p *int64) {
			*p = 1
		},
		func(p *int64) {
			*p++
		},
	)
	self.total++
	return self.total
}

// Evict drops buckets by expiration key, out of order timestamps leave them unsorted
func (self *Rate_t) Evict(ts time.Time) int {
	for it := self.cx.Front(); it != self.cx.End(); {
		next := it.Next()
		if ts.Before(it.Key) == false {
			self.total -= it.Value
			self.cx.Remove(it.Key)
		}
		it = next
	}
	for it := self.cx.Front(); it != self.cx.End() && self.cx.Size() > self.buckets; it = self.cx.Front() {
		self.total -= it.Value
		self.cx.Remove(it.Key)
	}
	return self.cx.Size()
}

func (self *Rate_t) Value(ts time.Time) int64 {
	self.Evict(ts)
	return self.total
}
