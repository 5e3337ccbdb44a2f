// Package metrics exposes Prometheus instrumentation for the thresholding
// engine and its callers.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	LblMethod = "method"
	LblStatus = "status"
	LblFormat = "format"
	LblCaller = "caller"

	StatusOK    = "ok"
	StatusError = "error"
)

var (
	ImagesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seuil",
		Subsystem: "engine",
		Name:      "images_total",
		Help:      "counter of thresholded images",
	}, []string{LblCaller, LblMethod, LblStatus})

	DurationHist = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "seuil",
		Subsystem: "engine",
		Name:      "duration_seconds",
		Help:      "Histogram of thresholding durations",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms ~ 8s
	}, []string{LblMethod})

	EncodedBytesHist = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "seuil",
		Subsystem: "engine",
		Name:      "encoded_bytes",
		Help:      "Histogram of encoded output sizes",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1KiB ~ 256MiB
	}, []string{LblFormat})
)

func init() {
	prometheus.MustRegister(ImagesCounter)
	prometheus.MustRegister(DurationHist)
	prometheus.MustRegister(EncodedBytesHist)
}

// ObserveApply records the outcome of one thresholding call.
func ObserveApply(caller, method string, elapsed time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	ImagesCounter.WithLabelValues(caller, method, status).Inc()
	if err == nil {
		DurationHist.WithLabelValues(method).Observe(elapsed.Seconds())
	}
}

// ObserveEncode records the size of an encoded output.
func ObserveEncode(format string, size int) {
	EncodedBytesHist.WithLabelValues(format).Observe(float64(size))
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("component", "metrics").Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
