// Package metrics keeps per-run Prometheus counters that can be written out
// in the node_exporter textfile format at the end of a batch.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer, which records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	conversions    *prometheus.CounterVec
	conversionTime prometheus.Histogram
	transcriptions *prometheus.CounterVec
	transcribeTime *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "a2t_conversions_total",
			Help: "Files handled by the converter, by outcome.",
		}, []string{"status"}),
		conversionTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "a2t_conversion_seconds",
			Help:    "Wall time of successful ffmpeg conversions.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		transcriptions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "a2t_transcriptions_total",
			Help: "Transcription requests, by provider and outcome.",
		}, []string{"provider", "status"}),
		transcribeTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "a2t_transcription_seconds",
			Help:    "Wall time of transcription requests.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"provider"}),
	}
}

// ObserveConversion counts one converter result. Elapsed is only recorded for
// converted files.
func (m *Metrics) ObserveConversion(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(status).Inc()
	if status == "converted" {
		m.conversionTime.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) ObserveTranscription(provider string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.transcriptions.WithLabelValues(provider, status).Inc()
	m.transcribeTime.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile atomically writes every metric to path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
