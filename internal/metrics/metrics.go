// Package metrics exposes prometheus counters and gauges for how many
// commands ran, how many table writes happened, how many change-set
// polls came in, and where the change index currently stands. The
// server updates the command, table-write and change-index metrics; it
// never calls ObserveChangePoll, so the change-poll counter only moves
// when another caller invokes it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry bundles the metrics the server updates. A nil *Registry is
// valid and every method is a no-op, so callers that don't care about
// metrics (most tests) can pass nil instead of threading a test
// registerer through.
type Registry struct {
	CommandsDispatched *prometheus.CounterVec
	TableWrites        prometheus.Counter
	ChangePolls        *prometheus.CounterVec
	ChangeIndex        prometheus.Gauge
}

// New registers every metric against reg (typically
// prometheus.DefaultRegisterer or a fresh prometheus.NewRegistry() in
// tests).
func New(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	return &Registry{
		CommandsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pandad_commands_dispatched_total",
			Help: "Commands dispatched by result kind.",
		}, []string{"result"}),
		TableWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "pandad_table_writes_total",
			Help: "Table write streams completed.",
		}),
		ChangePolls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pandad_change_polls_total",
			Help: "*CHANGES? polls by family.",
		}, []string{"family"}),
		ChangeIndex: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pandad_change_index",
			Help: "Current value of the monotonic change index.",
		}),
	}
}

func (r *Registry) ObserveDispatch(result string) {
	if r == nil {
		return
	}
	r.CommandsDispatched.WithLabelValues(result).Inc()
}

func (r *Registry) ObserveTableWrite() {
	if r == nil {
		return
	}
	r.TableWrites.Inc()
}

func (r *Registry) ObserveChangePoll(family string) {
	if r == nil {
		return
	}
	r.ChangePolls.WithLabelValues(family).Inc()
}

func (r *Registry) SetChangeIndex(v float64) {
	if r == nil {
		return
	}
	r.ChangeIndex.Set(v)
}
