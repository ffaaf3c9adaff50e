package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cspark"

// Recorder owns the service collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	generations *prometheus.CounterVec
	extractions *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec
	bundleTasks *prometheus.CounterVec
	tokens      *prometheus.CounterVec
}

// NewRecorder builds the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Generation requests by task and outcome (ok, missing_credential, transport, http_error, malformed)",
			},
			[]string{"task", "outcome"},
		),
		extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractions_total",
				Help:      "Page extractions by result",
			},
			[]string{"result"},
		),
		llmLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_request_duration_seconds",
				Help:      "Duration of chat completion calls by model",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
			},
			[]string{"model"},
		),
		bundleTasks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bundle_tasks_total",
				Help:      "Generate-all sub tasks by task and result",
			},
			[]string{"task", "result"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_tokens_total",
				Help:      "Tokens reported by the model endpoint by model and kind",
			},
			[]string{"model", "kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(r.generations, r.extractions, r.llmLatency, r.bundleTasks, r.tokens)
	}
	return r
}

// Handler exposes the gathered metrics in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (r *Recorder) ObserveGeneration(task, outcome string) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(task, outcome).Inc()
}

func (r *Recorder) ObserveExtraction(result string) {
	if r == nil {
		return
	}
	r.extractions.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveLLM(model string, dur time.Duration) {
	if r == nil {
		return
	}
	r.llmLatency.WithLabelValues(model).Observe(dur.Seconds())
}

func (r *Recorder) ObserveBundleTask(task string, ok bool) {
	if r == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	r.bundleTasks.WithLabelValues(task, result).Inc()
}
