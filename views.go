//
//
//

package fraudstat

import "context"

type Views[Key_t comparable] interface {
	Update(ctx context.Context, key Key_t, g []Gauge) (err error)
	Delete(key Key_t)
}

type NoViews_t[Key_t comparable] struct{}

func (NoViews_t[Key_t]) Update(context.Context, Key_t, []Gauge) error {
	return nil
}

func (NoViews_t[Key_t]) Delete(Key_t) {}
