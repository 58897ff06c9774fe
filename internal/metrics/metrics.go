// Package metrics exposes Prometheus collectors for circle governance.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "daojo"

// Outcome labels for OperationsTotal.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Collector groups every metric the service records.
// A nil *Collector is valid and records nothing.
type Collector struct {
	OperationsTotal    *prometheus.CounterVec
	VotesTotal         *prometheus.CounterVec
	TransitionsTotal   *prometheus.CounterVec
	ContributedAmount  prometheus.Counter
	DisbursedAmount    prometheus.Counter
	RPCDurationSeconds *prometheus.HistogramVec
}

// New creates a Collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Governance operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		VotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Votes recorded on funding requests.",
		}, []string{"choice"}),
		TransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_transitions_total",
			Help:      "Funding request status transitions.",
		}, []string{"from", "to"}),
		ContributedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contributed_amount_total",
			Help:      "Total amount moved from members into treasuries.",
		}),
		DisbursedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disbursed_amount_total",
			Help:      "Total amount paid out of treasuries.",
		}),
		RPCDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
	reg.MustRegister(
		c.OperationsTotal,
		c.VotesTotal,
		c.TransitionsTotal,
		c.ContributedAmount,
		c.DisbursedAmount,
		c.RPCDurationSeconds,
	)
	return c
}

// Operation counts one governance call.
func (c *Collector) Operation(name, outcome string) {
	if c == nil {
		return
	}
	c.OperationsTotal.WithLabelValues(name, outcome).Inc()
}

// Vote counts one ballot.
func (c *Collector) Vote(yes bool) {
	if c == nil {
		return
	}
	c.VotesTotal.WithLabelValues(strconv.FormatBool(yes)).Inc()
}

// Transition counts a request status change.
func (c *Collector) Transition(from, to string) {
	if c == nil {
		return
	}
	c.TransitionsTotal.WithLabelValues(from, to).Inc()
}

// Contributed adds amount to the contribution total.
func (c *Collector) Contributed(amount uint64) {
	if c == nil {
		return
	}
	c.ContributedAmount.Add(float64(amount))
}

// Disbursed adds amount to the disbursement total.
func (c *Collector) Disbursed(amount uint64) {
	if c == nil {
		return
	}
	c.DisbursedAmount.Add(float64(amount))
}

// ObserveRPC records the latency of one RPC.
func (c *Collector) ObserveRPC(procedure, code string, d time.Duration) {
	if c == nil {
		return
	}
	c.RPCDurationSeconds.WithLabelValues(procedure, code).Observe(d.Seconds())
}
