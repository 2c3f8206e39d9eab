//
//
//

package fraudstat

import (
	"fmt"
	"time"
)

type Gauge interface {
	GetName() string
	GetValueInt64() int64
	GetValueFloat64() float64
	String() string
}

type Gauge_t[T ~int64 | ~float64] struct {
	Name  string `json:"name"`
	Value T      `json:"value"`
}

func (self Gauge_t[T]) GetName() string {
	return self.Name
}

func (self Gauge_t[T]) GetValue() T {
	return self.Value
}

func (self Gauge_t[T]) GetValueInt64() int64 {
	return (int64)(self.Value)
}

func (self Gauge_t[T]) GetValueFloat64() float64 {
	return (float64)(self.Value)
}

func (self Gauge_t[T]) String() string {
	return fmt.Sprintf("{%s:%v}", self.Name, self.Value)
}

func ToGauges(in State_t[float64]) []Gauge {
	return []Gauge{
		Gauge_t[float64]{Name: "median", Value: in.Median},
		Gauge_t[int64]{Name: "size", Value: int64(in.Size)},
		Gauge_t[int64]{Name: "seen", Value: in.Seen},
		Gauge_t[int64]{Name: "rate", Value: in.Rate},
		Gauge_t[int64]{Name: "alerts", Value: in.Alerts},
		Gauge_t[float64]{Name: "last", Value: in.Last},
		Gauge_t[time.Duration]{Name: "idle", Value: in.Idle},
	}
}
