package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts tracker activity on its own registry.
type Metrics struct {
	reg *prometheus.Registry

	created     prometheus.Counter
	edited      prometheus.Counter
	toggled     prometheus.Counter
	deleted     prometheus.Counter
	rejected    *prometheus.CounterVec
	alerts      prometheus.Counter
	cueFailures prometheus.Counter
	tasks       prometheus.Gauge
	completed   prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		created: f.NewCounter(prometheus.CounterOpts{
			Name: "remindo_tasks_created_total",
			Help: "Tasks created.",
		}),
		edited: f.NewCounter(prometheus.CounterOpts{
			Name: "remindo_tasks_edited_total",
			Help: "Tasks edited.",
		}),
		toggled: f.NewCounter(prometheus.CounterOpts{
			Name: "remindo_tasks_toggled_total",
			Help: "Completion toggles.",
		}),
		deleted: f.NewCounter(prometheus.CounterOpts{
			Name: "remindo_tasks_deleted_total",
			Help: "Tasks deleted.",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "remindo_input_rejected_total",
			Help: "Create or edit attempts rejected by validation.",
		}, []string{"op"}),
		alerts: f.NewCounter(prometheus.CounterOpts{
			Name: "remindo_alerts_fired_total",
			Help: "Due-time alerts fired.",
		}),
		cueFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "remindo_audio_cue_failures_total",
			Help: "Audio cues that failed to play.",
		}),
		tasks: f.NewGauge(prometheus.GaugeOpts{
			Name: "remindo_tasks",
			Help: "Tasks in the store.",
		}),
		completed: f.NewGauge(prometheus.GaugeOpts{
			Name: "remindo_tasks_completed",
			Help: "Completed tasks in the store.",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// WriteFile dumps the registry in text exposition format for a node
// exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func (m *Metrics) observe(tasks []Task) {
	p := ComputeProgress(tasks)
	m.tasks.Set(float64(p.Total))
	m.completed.Set(float64(p.Completed))
}
