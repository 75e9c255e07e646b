package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(broadcastMessagesTotal, broadcastRunsTotal) }

var broadcastMessagesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "broadcast_messages_total",
		Help: "Daily-broadcast delivery attempts, labeled by outcome.",
	},
	[]string{"status"}, // 'sent', 'failed'
)

var broadcastRunsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "broadcast_runs_total",
		Help: "Daily-broadcast firings, labeled by outcome.",
	},
	[]string{"status"}, // 'sent', 'empty', 'error'
)

func IncBroadcastMessage(status string) {
	broadcastMessagesTotal.WithLabelValues(norm(status)).Inc()
}

func IncBroadcastRun(status string) {
	broadcastRunsTotal.WithLabelValues(norm(status)).Inc()
}
