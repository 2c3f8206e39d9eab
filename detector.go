//
//
//

package fraudstat

import (
	"time"

	"github.com/gammazero/deque"
	"github.com/google/uuid"
	"github.com/ondi/go-cache"
)

type Observation_t[T Number] struct {
	Ts   time.Time
	Data T
}

type Alert_t[T Number] struct {
	Id        string    `json:"id"`
	Ts        time.Time `json:"ts"`
	Value     T         `json:"value"`
	Median    float64   `json:"median"`
	Threshold float64   `json:"threshold"`
}

type State_t[T Number] struct {
	Median    float64       `json:"median"`
	Size      int           `json:"size"`
	Limit     int           `json:"limit"`
	Seen      int64         `json:"seen"`
	Rate      int64         `json:"rate"` // observations during the last minute
	Alerts    int64         `json:"alerts"`
	Last      T             `json:"last"`
	LastTs    time.Time     `json:"last_ts"`
	LastAlert time.Time     `json:"last_alert"`
	Idle      time.Duration `json:"idle"`
}

// Detector_t is the live form of CountAnomaliesWith, one observation per call.
// Not safe for concurrent use.
type Detector_t[T Number] struct {
	tracker      *Tracker_t[T]
	window       *cache.Cache_t[int, Observation_t[T]] // arrival order, key = seq
	alerts       *deque.Deque[Alert_t[T]]
	rate         *Rate_t
	factor       float64
	ttl          time.Duration
	limit        int
	alerts_limit int
	seq          int
	seen         int64
	alerts_total int64
	last         Observation_t[T]
	last_alert   time.Time
}

// ttl == 0 keeps observations until they are pushed out by newer ones
func NewDetector[T Number](limit int, factor float64, ttl time.Duration, alerts_limit int, new_partition NewPartition_t[T]) (self *Detector_t[T]) {
	self = &Detector_t[T]{
		tracker:      NewTracker(new_partition),
		window:       cache.New[int, Observation_t[T]](),
		alerts:       deque.New[Alert_t[T]](),
		rate:         NewRate(60, time.Minute),
		factor:       factor,
		ttl:          ttl,
		limit:        limit,
		alerts_limit: alerts_limit,
	}
	return
}

func (self *Detector_t[T]) Add(ts time.Time, data T) (alert Alert_t[T], ok bool) {
	self.Evict(ts)
	if self.limit > 0 && self.window.Size() == self.limit {
		med, _ := self.tracker.Median()
		if threshold := self.factor * med; float64(data) >= threshold {
			alert = Alert_t[T]{
				Id:        uuid.New().String(),
				Ts:        ts,
				Value:     data,
				Median:    med,
				Threshold: threshold,
			}
			ok = true
			self.push_alert(alert)
		}
		self.remove_front()
	}
	if self.limit > 0 {
		self.window.CreateBack(
			self.seq,
			func(p *Observation_t[T]) {
				p.Ts = ts
				p.Data = data
			},
			func(p *Observation_t[T]) {},
		)
		self.seq++
		self.tracker.Add(data)
	}
	self.seen++
	self.rate.Add(ts)
	self.last = Observation_t[T]{Ts: ts, Data: data}
	return
}

func (self *Detector_t[T]) push_alert(alert Alert_t[T]) {
	self.alerts_total++
	self.last_alert = alert.Ts
	if self.alerts_limit <= 0 {
		return
	}
	for self.alerts.Len() >= self.alerts_limit {
		self.alerts.PopFront()
	}
	self.alerts.PushBack(alert)
}

func (self *Detector_t[T]) remove_front() {
	if it := self.window.Front(); it != self.window.End() {
		self.tracker.Remove(it.Value.Data)
		self.window.Remove(it.Key)
	}
}

// Evict drops observations older than ttl, returns window size
func (self *Detector_t[T]) Evict(ts time.Time) int {
	if self.ttl <= 0 {
		return self.window.Size()
	}
	for it := self.window.Front(); it != self.window.End(); it = self.window.Front() {
		if ts.Sub(it.Value.Ts) < self.ttl {
			break
		}
		self.remove_front()
	}
	return self.window.Size()
}

func (self *Detector_t[T]) Value(ts time.Time) (out State_t[T]) {
	self.Evict(ts)
	out.Median, out.Size = self.tracker.Median()
	out.Limit = self.limit
	out.Seen = self.seen
	out.Rate = self.rate.Value(ts)
	out.Alerts = self.alerts_total
	out.Last = self.last.Data
	out.LastTs = self.last.Ts
	out.LastAlert = self.last_alert
	if !self.last.Ts.IsZero() {
		out.Idle = ts.Sub(self.last.Ts)
	}
	return
}

// Alerts returns recent alerts, oldest first
func (self *Detector_t[T]) Alerts() (res []Alert_t[T]) {
	for i := 0; i < self.alerts.Len(); i++ {
		res = append(res, self.alerts.At(i))
	}
	return
}

func (self *Detector_t[T]) Range(f func(data T) bool) {
	self.tracker.Range(f)
}
