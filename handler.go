//
//
//

package fraudstat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ondi/go-tst"
	"github.com/pkg/errors"
)

type LogWrite_t func(ctx context.Context, format string, args ...any)

func NoLog(context.Context, string, ...any) {}

type ObserveRequest_t struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Ts    int64   `json:"ts"` // unix milliseconds, 0 = now
}

type ObserveResponse_t struct {
	Key    string            `json:"key"`
	Alert  bool              `json:"alert"`
	Detail *Alert_t[float64] `json:"detail,omitempty"`
	State  State_t[float64]  `json:"state"`
}

type CountRequest_t struct {
	Values []float64 `json:"values"`
	D      int       `json:"d"`
	Factor float64   `json:"factor"` // 0 = DefaultFactor
}

type CountResponse_t struct {
	Count int `json:"count"`
}

var ErrNotFound = errors.New("key not found")

type handle_t func(w http.ResponseWriter, r *http.Request) error

type route_t struct {
	path    string
	methods map[string]handle_t
}

type Handler_t struct {
	storage    *Storage_t[string]
	views      Views[string]
	log        LogWrite_t
	routes     *tst.Tree3_t[route_t]
	timeout    time.Duration
	body_limit int64
}

func NewHandler(storage *Storage_t[string], views Views[string], log LogWrite_t, timeout time.Duration, body_limit int64) (self *Handler_t) {
	self = &Handler_t{
		storage:    storage,
		views:      views,
		log:        log,
		routes:     tst.NewTree3[route_t](),
		timeout:    timeout,
		body_limit: body_limit,
	}
	self.routes.Add("/observe", route_t{path: "/observe", methods: map[string]handle_t{http.MethodPost: self.observe}})
	self.routes.Add("/state", route_t{path: "/state", methods: map[string]handle_t{http.MethodGet: self.state, http.MethodDelete: self.remove}})
	self.routes.Add("/alerts", route_t{path: "/alerts", methods: map[string]handle_t{http.MethodGet: self.alerts}})
	self.routes.Add("/count", route_t{path: "/count", methods: map[string]handle_t{http.MethodPost: self.count}})
	return
}

func (self *Handler_t) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Search matches the longest prefix
	route, _, found := self.routes.Search(r.URL.Path)
	if found == 0 || route.path != r.URL.Path {
		http.NotFound(w, r)
		return
	}
	handle, ok := route.methods[r.Method]
	if !ok {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if self.timeout > 0 {
		ctx, cancel := context.WithTimeoutCause(r.Context(), self.timeout, errors.Errorf("%s timeout", r.URL.Path))
		defer cancel()
		r = r.WithContext(ctx)
	}
	if self.body_limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, self.body_limit)
	}
	if err := handle(w, r); err != nil {
		self.log(r.Context(), "REQUEST FAILED: %s %s: %v", r.Method, r.URL.Path, err)
		if errors.Cause(err) == ErrNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
}

func (self *Handler_t) observe(w http.ResponseWriter, r *http.Request) (err error) {
	var req ObserveRequest_t
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errors.Wrap(err, "decode observe")
	}
	if len(req.Key) == 0 {
		return errors.New("key required")
	}
	ts := time.Now()
	if req.Ts > 0 {
		ts = time.UnixMilli(req.Ts)
	}
	res := ObserveResponse_t{Key: req.Key}
	alert, ok, state := self.storage.Observe(req.Key, ts, req.Value)
	res.State = state
	if ok {
		self.log(r.Context(), "ALERT: key=%q, value=%v, median=%v, threshold=%v, id=%s", req.Key, alert.Value, alert.Median, alert.Threshold, alert.Id)
		res.Alert = true
		res.Detail = &alert
	}
	if err = self.views.Update(r.Context(), req.Key, ToGauges(res.State)); err != nil {
		self.log(r.Context(), "VIEWS: key=%q, %v", req.Key, err)
	}
	return write_json(w, http.StatusOK, res)
}

func (self *Handler_t) state(w http.ResponseWriter, r *http.Request) error {
	key := r.URL.Query().Get("key")
	res, ok := self.storage.Get(time.Now(), key)
	if !ok {
		return errors.Wrapf(ErrNotFound, "state %q", key)
	}
	return write_json(w, http.StatusOK, res)
}

func (self *Handler_t) remove(w http.ResponseWriter, r *http.Request) error {
	key := r.URL.Query().Get("key")
	if !self.storage.Remove(key) {
		return errors.Wrapf(ErrNotFound, "remove %q", key)
	}
	self.views.Delete(key)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (self *Handler_t) alerts(w http.ResponseWriter, r *http.Request) error {
	key := r.URL.Query().Get("key")
	res, ok := self.storage.Alerts(key)
	if !ok {
		return errors.Wrapf(ErrNotFound, "alerts %q", key)
	}
	if res == nil {
		res = []Alert_t[float64]{}
	}
	return write_json(w, http.StatusOK, res)
}

func (self *Handler_t) count(w http.ResponseWriter, r *http.Request) (err error) {
	var req CountRequest_t
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errors.Wrap(err, "decode count")
	}
	if req.Factor == 0 {
		req.Factor = DefaultFactor
	}
	if err = r.Context().Err(); err != nil {
		return errors.Wrap(context.Cause(r.Context()), "count")
	}
	res := CountResponse_t{
		Count: CountAnomaliesWith(req.Values, req.D, req.Factor, PartitionFor[float64](req.D)),
	}
	return write_json(w, http.StatusOK, res)
}

func write_json(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
