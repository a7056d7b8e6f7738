package cdr

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional set of Prometheus counters a Cdr cursor reports
// through. A nil *Metrics (the default) disables all counting, the same
// opt-in shape as SetLogger.
type Metrics struct {
	BytesEncoded     prometheus.Counter
	BytesDecoded     prometheus.Counter
	HeaderPromotions prometheus.Counter
}

// NewMetrics registers a Metrics set with reg under the given subsystem
// name (e.g. "dds_participant", "rtps_writer"), so multiple independent
// codec instances in the same process can be told apart on a shared
// registry.
func NewMetrics(reg prometheus.Registerer, subsystem string) *Metrics {
	m := &Metrics{
		BytesEncoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cdr",
			Subsystem: subsystem,
			Name:      "bytes_encoded_total",
			Help:      "Total bytes of primitive values written by the codec; alignment padding and raw byte runs (string payloads, the encapsulation header) are not counted.",
		}),
		BytesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cdr",
			Subsystem: subsystem,
			Name:      "bytes_decoded_total",
			Help:      "Total bytes of primitive values read by the codec; alignment padding and raw byte runs (string payloads, the encapsulation header) are not counted.",
		}),
		HeaderPromotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cdr",
			Subsystem: subsystem,
			Name:      "member_header_promotions_total",
			Help:      "Member headers rewritten from a compact to a larger form after their body length was known.",
		}),
	}
	reg.MustRegister(m.BytesEncoded, m.BytesDecoded, m.HeaderPromotions)
	return m
}

// SetMetrics attaches an optional metrics sink to the cursor.
func (c *Cdr) SetMetrics(m *Metrics) { c.metrics = m }

func (c *Cdr) countEncoded(n int) {
	if c.metrics != nil {
		c.metrics.BytesEncoded.Add(float64(n))
	}
}

func (c *Cdr) countDecoded(n int) {
	if c.metrics != nil {
		c.metrics.BytesDecoded.Add(float64(n))
	}
}

func (c *Cdr) countPromotion() {
	if c.metrics != nil {
		c.metrics.HeaderPromotions.Inc()
	}
}
