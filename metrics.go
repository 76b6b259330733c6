package ike

import (
	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the engine does. A nil registerer leaves the
// collectors unregistered, which suits tests and embedding.
type Metrics struct {
	Datagrams    *prometheus.CounterVec
	Negotiations *prometheus.CounterVec
	Sent         *prometheus.CounterVec
	Contexts     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Datagrams: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ike",
			Name:      "datagrams_total",
			Help:      "Datagrams received, by route and result.",
		}, []string{"route", "result"}),
		Negotiations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ike",
			Name:      "negotiations_total",
			Help:      "Finished IKE_SA_INIT negotiations, by role and outcome.",
		}, []string{"role", "outcome"}),
		Sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ike",
			Name:      "sent_total",
			Help:      "Datagrams written, by kind.",
		}, []string{"kind"}),
		Contexts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ike",
			Name:      "contexts",
			Help:      "Negotiation contexts in the table.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Datagrams, m.Negotiations, m.Sent, m.Contexts)
	}
	return m
}

func (m *Metrics) datagram(r route, result string) {
	m.Datagrams.WithLabelValues(r.String(), result).Inc()
}

func (m *Metrics) negotiated(role Role, reason error) {
	m.Negotiations.WithLabelValues(role.String(), outcome(reason)).Inc()
}

func (m *Metrics) sent(kind string) {
	m.Sent.WithLabelValues(kind).Inc()
}

func outcome(reason error) string {
	switch errors.Cause(reason) {
	case nil:
		return "established"
	case ErrNoMatchingProposal:
		return "no_proposal"
	case ErrCryptoFailure:
		return "crypto_failure"
	case ErrTimeout:
		return "timeout"
	case ErrAborted:
		return "aborted"
	case ErrPeerNotification:
		return "peer_error"
	case protocol.ERR_INVALID_KE_PAYLOAD:
		return "invalid_ke"
	default:
		return "error"
	}
}
