/*
metrics.go - Prometheus counters for the delta API

PURPOSE:
  Process-level counters for the three engine operations, exposed on
  /metrics via promhttp. Global only - no per-delta labels, so
  cardinality stays bounded no matter how many deltas clients register.
*/
package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	applicationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reldelta_applications_total",
		Help: "Total delta applications served (stored and inline)",
	})
	diffsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reldelta_diffs_total",
		Help: "Total two-instant diffs served",
	})
	conversionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reldelta_conversions_total",
		Help: "Total unit conversions served",
	})
)

func init() {
	prometheus.MustRegister(applicationsTotal, diffsTotal, conversionsTotal)
}
