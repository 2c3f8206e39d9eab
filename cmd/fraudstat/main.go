package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/alecthomas/kingpin.v2"

	fraudstat "github.com/ondi/go-fraudstat"
)

func main() {
	var (
		cli          = kingpin.New(filepath.Base(os.Args[0]), "sliding median spending alerts")
		countCmd     = cli.Command("count", "count values at least factor times the median of the preceding window")
		countWindow  = countCmd.Flag("window", "number of preceding values in the median window").Short('d').Default("3").Int()
		countFactor  = countCmd.Flag("factor", "alert threshold as a multiple of the median").Default("2").Float64()
		countFile    = countCmd.Arg("file", "input file, numbers separated by spaces, commas or new lines (default is stdin)").String()
		serveCmd     = cli.Command("serve", "run http api")
		serveListen  = serveCmd.Flag("listen", "listen address").Default(":8080").String()
		serveWindow  = serveCmd.Flag("window", "median window per key").Short('d').Default("30").Int()
		serveFactor  = serveCmd.Flag("factor", "alert threshold as a multiple of the median").Default("2").Float64()
		serveTTL     = serveCmd.Flag("ttl", "drop observations older than ttl, 0 keeps them").Default("0s").Duration()
		serveKeys    = serveCmd.Flag("keys", "max number of tracked keys").Default("100000").Int()
		serveAlerts  = serveCmd.Flag("alerts", "recent alerts kept per key").Default("16").Int()
		serveTimeout = serveCmd.Flag("timeout", "request timeout").Default("5s").Duration()
		serveViews   = serveCmd.Flag("views", "metric views").Default("prometheus").Enum("prometheus", "opencensus", "none")
		servePrefix  = serveCmd.Flag("prefix", "metric name prefix").Default("fraud_").String()
	)

	logger := newLogger(os.Stderr)

	var err error
	switch kingpin.MustParse(cli.Parse(os.Args[1:])) {
	case countCmd.FullCommand():
		err = count(os.Stdout, *countFile, *countWindow, *countFactor)
	case serveCmd.FullCommand():
		err = serve(logger, *serveListen, *serveWindow, *serveFactor, *serveTTL, *serveKeys, *serveAlerts, *serveTimeout, *serveViews, *servePrefix)
	}
	if err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func count(out io.Writer, file string, window int, factor float64) (err error) {
	in := os.Stdin
	if len(file) > 0 {
		if in, err = os.Open(file); err != nil {
			return errors.Wrap(err, "open input")
		}
		defer in.Close()
	}
	values, err := readValues(in)
	if err != nil {
		return
	}
	res := fraudstat.CountAnomaliesWith(values, window, factor, fraudstat.PartitionFor[float64](window))
	_, err = fmt.Fprintln(out, res)
	return
}

func readValues(in io.Reader) (res []float64, err error) {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		for _, field := range strings.Split(scanner.Text(), ",") {
			if len(field) == 0 {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "value %d", len(res))
			}
			res = append(res, v)
		}
	}
	return res, errors.Wrap(scanner.Err(), "read input")
}

// library lines come through logWrite, a caller field would only point at it
func newLogger(out io.Writer) log.Logger {
	return log.With(log.NewLogfmtLogger(log.NewSyncWriter(out)), "ts", log.DefaultTimestampUTC)
}

func logWrite(logger log.Logger) fraudstat.LogWrite_t {
	return func(ctx context.Context, format string, args ...any) {
		level.Info(logger).Log("msg", fmt.Sprintf(format, args...))
	}
}

func serve(logger log.Logger, listen string, window int, factor float64, ttl time.Duration, keys int, alerts int, timeout time.Duration, views_name string, prefix string) (err error) {
	var views fraudstat.Views[string] = fraudstat.NoViews_t[string]{}
	switch views_name {
	case "prometheus":
		views, err = fraudstat.NewPrometheusViews(prefix, prometheus.DefaultRegisterer)
	case "opencensus":
		views, err = fraudstat.NewOpenCensusViews(prefix)
	}
	if err != nil {
		return errors.Wrap(err, "views")
	}

	storage := fraudstat.NewStorage(keys, window, factor, ttl, alerts, func(key string, value *fraudstat.Detector_t[float64]) {
		level.Debug(logger).Log("msg", "key evicted", "key", key)
		views.Delete(key)
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", fraudstat.NewHandler(storage, views, logWrite(logger), timeout, 1<<20))

	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		level.Info(logger).Log("msg", "shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			level.Error(logger).Log("msg", "shutdown", "err", err)
		}
	}()

	level.Info(logger).Log("msg", "listening", "addr", listen, "window", window, "factor", factor)
	if err = srv.ListenAndServe(); err != http.ErrServerClosed {
		return errors.Wrap(err, "listen")
	}
	return nil
}
