package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

// GradingMetrics exports score entry counters to Prometheus.
type GradingMetrics struct {
	submissions   *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	gradedPicks   *prometheus.CounterVec
	pointsAwarded prometheus.Counter
}

// NewGradingMetrics registers the grading collectors on reg. A nil reg falls back to
// the default registerer.
func NewGradingMetrics(reg prometheus.Registerer) (*GradingMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &GradingMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pick_grader",
			Name:      "score_submissions_total",
			Help:      "Score submissions by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pick_grader",
			Name:      "score_submission_duration_seconds",
			Help:      "Time spent handling one score submission.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		gradedPicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pick_grader",
			Name:      "graded_picks_total",
			Help:      "Graded picks by bet type and result.",
		}, []string{"bet_type", "won"}),
		pointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pick_grader",
			Name:      "points_awarded_total",
			Help:      "Points credited to users.",
		}),
	}

	for _, c := range []prometheus.Collector{m.submissions, m.duration, m.gradedPicks, m.pointsAwarded} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *GradingMetrics) ObserveSubmission(outcome string, elapsed time.Duration) {
	m.submissions.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *GradingMetrics) ObserveGradedPick(betType pick.BetType, won bool) {
	m.gradedPicks.WithLabelValues(string(betType), strconv.FormatBool(won)).Inc()
}

func (m *GradingMetrics) AddPointsAwarded(points int) {
	if points <= 0 {
		return
	}
	m.pointsAwarded.Add(float64(points))
}
