// Package metrics mirrors per-decoder statistics (spec.md §3) into
// Prometheus counters, implementing decoder.StatsSink so the decoder
// package itself never depends on Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/merbanan/rtl-433-sub002/decoder"
)

// Recorder is a decoder.StatsSink backed by four Prometheus CounterVecs,
// one per statistic named in spec.md §3: decode_events, decode_ok,
// decode_messages and decode_fails (the last broken out by failure code).
type Recorder struct {
	events   *prometheus.CounterVec
	ok       *prometheus.CounterVec
	messages *prometheus.CounterVec
	fails    *prometheus.CounterVec
}

// NewRecorder constructs a Recorder and registers its counters against reg.
// Pass prometheus.NewRegistry() for an isolated registry, or
// prometheus.DefaultRegisterer to expose via the default /metrics handler.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rf433_decode_events_total",
			Help: "Count of events successfully extracted per decoder.",
		}, []string{"decoder"}),
		ok: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rf433_decode_ok_total",
			Help: "Count of bursts a decoder accepted (Result > 0).",
		}, []string{"decoder"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rf433_decode_messages_total",
			Help: "Count of bursts handed to a decoder, regardless of outcome.",
		}, []string{"decoder"}),
		fails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rf433_decode_fails_total",
			Help: "Count of rejected bursts per decoder, broken out by failure code.",
		}, []string{"decoder", "code"}),
	}
	reg.MustRegister(r.events, r.ok, r.messages, r.fails)
	return r
}

// Observe implements decoder.StatsSink, mirroring one decode result for
// decoderName into the appropriate counters.
func (r *Recorder) Observe(decoderName string, result decoder.Result) {
	r.messages.WithLabelValues(decoderName).Inc()
	switch {
	case result > 0:
		r.events.WithLabelValues(decoderName).Add(float64(result))
		r.ok.WithLabelValues(decoderName).Inc()
	case result < 0:
		r.fails.WithLabelValues(decoderName, strconv.Itoa(int(result))).Inc()
	}
}

var _ decoder.StatsSink = (*Recorder)(nil)
