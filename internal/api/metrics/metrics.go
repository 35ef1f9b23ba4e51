// Package metrics defines the custom Prometheus metrics for the VerifID API.
// It is the single source of truth for metric names, labels, and help
// strings; metrics register with the default registry at package init via
// promauto, and the echoprometheus middleware adds the standard HTTP series.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "verifid"

// UsersRegisteredTotal counts successfully created user accounts.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// RequestIDsGeneratedTotal counts request-ID generations, rotations included.
var RequestIDsGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_ids_generated_total",
		Help:      "Total number of verification request IDs generated or rotated.",
	},
)

// RequestIDsRevokedTotal counts request-ID revocations.
var RequestIDsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_ids_revoked_total",
		Help:      "Total number of verification request IDs revoked.",
	},
)

// LookupsTotal counts public verification lookups.
// Label:
//   - result: "hit" (token resolved), "miss" (unknown token), "invalid" (empty token)
var LookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of public request-ID lookups, labelled by result.",
	},
	[]string{"result"},
)
