package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome relay 调用结果（与 RelayError 的类型一一对应）
const (
	OutcomeSuccess   = "success"
	OutcomeNetwork   = "network"
	OutcomeTimeout   = "timeout"
	OutcomeStatus    = "status"
	OutcomeMalformed = "malformed"
)

// Recorder nil 接收者上的方法全部为空操作
type Recorder struct {
	relayTotal    *prometheus.CounterVec
	relayDuration prometheus.Histogram
	resultTotal   *prometheus.CounterVec
	rejectedTotal prometheus.Counter
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		relayTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardiocheck",
			Subsystem: "relay",
			Name:      "calls_total",
			Help:      "Outbound inference calls by outcome.",
		}, []string{"outcome"}),
		relayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cardiocheck",
			Subsystem: "relay",
			Name:      "call_duration_seconds",
			Help:      "Latency of outbound inference calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		resultTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardiocheck",
			Subsystem: "result",
			Name:      "reads_total",
			Help:      "Result view reads by artifact presence.",
		}, []string{"artifact"}),
		rejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cardiocheck",
			Subsystem: "relay",
			Name:      "validation_rejected_total",
			Help:      "Submissions rejected before the relay call.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.relayTotal, r.relayDuration, r.resultTotal, r.rejectedTotal)
	}
	return r
}

func (r *Recorder) ObserveRelay(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.relayTotal.WithLabelValues(outcome).Inc()
	r.relayDuration.Observe(d.Seconds())
}

func (r *Recorder) ObserveResult(found bool) {
	if r == nil {
		return
	}
	label := "absent"
	if found {
		label = "present"
	}
	r.resultTotal.WithLabelValues(label).Inc()
}

func (r *Recorder) ObserveRejected() {
	if r == nil {
		return
	}
	r.rejectedTotal.Inc()
}
