//
//
//

package fraudstat

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

type OpenCensus_t struct {
	State    *stats.Float64Measure
	View     *view.View
	key_tag  tag.Key
	type_tag tag.Key
}

// views are exported by whatever exporter the application registers with view.RegisterExporter
func NewOpenCensusViews(prefix string) (views Views[string], err error) {
	self := &OpenCensus_t{
		State: stats.Float64(prefix+"state", "sliding median detector state", stats.UnitDimensionless),
	}
	if self.key_tag, err = tag.NewKey("key"); err != nil {
		return
	}
	if self.type_tag, err = tag.NewKey("type"); err != nil {
		return
	}
	self.View = &view.View{
		Name:        prefix + "state",
		Description: "sliding median detector state",
		Measure:     self.State,
		TagKeys:     []tag.Key{self.key_tag, self.type_tag},
		Aggregation: view.LastValue(),
	}
	if err = view.Register(self.View); err != nil {
		return
	}
	return self, err
}

func (self *OpenCensus_t) Update(ctx context.Context, key string, g []Gauge) (err error) {
	for _, v := range g {
		e := stats.RecordWithTags(
			ctx,
			[]tag.Mutator{tag.Upsert(self.key_tag, key), tag.Upsert(self.type_tag, v.GetName())},
			self.State.M(v.GetValueFloat64()),
		)
		if e != nil {
			err = e
		}
	}
	return
}

// Delete is a no-op: LastValue rows are kept until the view is unregistered
func (self *OpenCensus_t) Delete(key string) {}

func (self *OpenCensus_t) Close() {
	view.Unregister(self.View)
}
