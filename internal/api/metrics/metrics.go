// Package metrics defines all custom Prometheus metrics for the tenant
// identity service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CommandsExecutedTotal counts sandboxed commands that reached the shell.
// Label:
//   - status: "ok" (exit 0) or "error"
var CommandsExecutedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_executed_total",
		Help:      "Total number of sandboxed commands executed, by exit status.",
	},
	[]string{"status"},
)

// CommandsDeniedTotal counts commands rejected by the policy before any
// subprocess was spawned.
var CommandsDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_denied_total",
		Help:      "Total number of commands rejected by the allow/deny policy.",
	},
)

// CommandDuration measures wall time of sandboxed command execution.
var CommandDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_seconds",
		Help:      "Duration of sandboxed command execution.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ListingsTotal counts directory listing requests.
// Label:
//   - result: "ok" or "error"
var ListingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_total",
		Help:      "Total number of tenant directory listings, by result.",
	},
	[]string{"result"},
)
