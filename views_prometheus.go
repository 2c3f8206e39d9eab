//
// max(fraud_state{app="$app_name",type="median"}) by (key)
// sum(fraud_state{app="$app_name",type="alerts"}) by (key)
// sum(rate(fraud_state{app="$app_name",type="seen"}[1m])) by (key)
//

package fraudstat

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type Prometheus_t struct {
	State *prometheus.GaugeVec // median, size, seen, rate, alerts, last, idle
}

// import "github.com/prometheus/client_golang/prometheus/promhttp"
// mux.Handle("/metrics", promhttp.Handler())
func NewPrometheusViews(prefix string, reg prometheus.Registerer) (views Views[string], err error) {
	self := &Prometheus_t{
		State: prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: prefix + "state"}, []string{"key", "type"}),
	}
	if err = reg.Register(self.State); err != nil {
		return
	}
	return self, err
}

// Update returns the first error, the remaining gauges are still set
func (self *Prometheus_t) Update(ctx context.Context, key string, g []Gauge) (err error) {
	for _, v := range g {
		_state, e := self.State.GetMetricWith(prometheus.Labels{
			"key":  key,
			"type": v.GetName(),
		})
		if e != nil {
			if err == nil {
				err = e
			}
			continue
		}
		_state.Set(v.GetValueFloat64())
	}
	return
}

func (self *Prometheus_t) Delete(key string) {
	self.State.DeletePartialMatch(prometheus.Labels{"key": key})
}
