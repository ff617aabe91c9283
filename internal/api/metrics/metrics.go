// Package metrics defines and registers all custom Prometheus metrics for
// the property registry. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registry"

// RuleRejectionsTotal counts writes rejected by the invariant engine.
// Label:
//   - rule: the rule that fired, e.g. "house_owner_role",
//     "house_number_unique", "apartment_unique", "assignment_user_role",
//     "single_active_assignment"
var RuleRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rule_rejections_total",
		Help:      "Total number of writes rejected by a domain invariant, by rule.",
	},
	[]string{"rule"},
)

// SweepsTotal counts exclusive-save transactions that may have deactivated
// sibling assignments for a house.
var SweepsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignment_sweeps_total",
		Help:      "Total number of exclusive active-assignment writes performed.",
	},
)

// HousesCreatedTotal counts registered houses.
// Label:
//   - house_type: "apartment", "single_family", "duplex", "townhouse", "condo"
var HousesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "houses_created_total",
		Help:      "Total number of houses registered, by house type.",
	},
	[]string{"house_type"},
)

// UsersRegisteredTotal counts created accounts.
// Label:
//   - role: "owner", "tenant", "admin"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)
