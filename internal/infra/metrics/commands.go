package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(commandsTotal) }

var commandsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bot_commands_total",
		Help: "Inbound bot commands, labeled by command and authorization outcome.",
	},
	[]string{"command", "status"}, // status: 'ok', 'unauthorized', 'error'
)

func IncCommand(command, status string) {
	commandsTotal.WithLabelValues(norm(command), norm(status)).Inc()
}
