package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(moderationDecisionsTotal) }

var moderationDecisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moderation_decisions_total",
		Help: "Moderation decision events, labeled by action and outcome.",
	},
	[]string{"action", "status"}, // status: 'applied', 'already_processed', 'unauthorized'
)

func IncModerationDecision(action, status string) {
	moderationDecisionsTotal.WithLabelValues(norm(action), norm(status)).Inc()
}
