// Package metrics exports pipeline counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts summaries, quizzes and grades on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	summaries       *prometheus.CounterVec
	quizzes         prometheus.Counter
	items           *prometheus.CounterVec
	grades          prometheus.Counter
	gradeRatio      prometheus.Histogram
	rejected        *prometheus.CounterVec
	processDuration prometheus.Histogram
}

// New registers all collectors on reg, or on a fresh registry when reg is nil.
func New(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{registry: reg}

	r.summaries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyquiz",
			Name:      "summaries_total",
			Help:      "Total number of summaries produced",
		},
		[]string{"style", "length"},
	)
	r.quizzes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studyquiz",
			Name:      "quizzes_generated_total",
			Help:      "Total number of quizzes generated",
		},
	)
	r.items = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyquiz",
			Name:      "quiz_items_total",
			Help:      "Total number of quiz items generated by type",
		},
		[]string{"type"},
	)
	r.grades = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studyquiz",
			Name:      "grades_total",
			Help:      "Total number of graded submissions",
		},
	)
	r.gradeRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "studyquiz",
			Name:      "grade_ratio",
			Help:      "Score divided by max score for graded submissions",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
	r.rejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyquiz",
			Name:      "rejected_inputs_total",
			Help:      "Total number of study texts rejected before processing",
		},
		[]string{"reason"},
	)
	r.processDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "studyquiz",
			Name:      "process_duration_seconds",
			Help:      "Time spent turning a study text into a session",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	reg.MustRegister(r.summaries, r.quizzes, r.items, r.grades, r.gradeRatio, r.rejected, r.processDuration)
	return r
}

func (r *Recorder) RecordSummary(style, length string) {
	r.summaries.WithLabelValues(style, length).Inc()
}

// RecordQuiz counts a generated quiz and each of its items by type.
func (r *Recorder) RecordQuiz(kinds []string) {
	r.quizzes.Inc()
	for _, k := range kinds {
		r.items.WithLabelValues(k).Inc()
	}
}

func (r *Recorder) RecordGrade(score, maxScore int) {
	r.grades.Inc()
	if maxScore > 0 {
		r.gradeRatio.Observe(float64(score) / float64(maxScore))
	}
}

func (r *Recorder) RecordRejected(reason string) {
	r.rejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) ObserveProcess(d time.Duration) {
	r.processDuration.Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
