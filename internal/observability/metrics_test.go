package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradingMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewGradingMetrics(reg)
	require.NoError(t, err)

	m.ObserveSubmission("graded", 20*time.Millisecond)
	m.ObserveSubmission("graded", 30*time.Millisecond)
	m.ObserveSubmission("failed", time.Millisecond)
	m.ObserveGradedPick(pick.BetTypeSpread, true)
	m.ObserveGradedPick(pick.BetTypeOverUnder, false)
	m.ObserveGradedPick(pick.BetTypeOverUnder, false)
	m.AddPointsAwarded(2)
	m.AddPointsAwarded(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("graded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gradedPicks.WithLabelValues("spread", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.gradedPicks.WithLabelValues("over_under", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.pointsAwarded))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestNewGradingMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewGradingMetrics(reg)
	require.NoError(t, err)

	_, err = NewGradingMetrics(reg)
	require.Error(t, err)
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewGradingMetrics(reg)
	require.NoError(t, err)
	m.AddPointsAwarded(3)

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMetricsHandler(reg, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body, _ := io.ReadAll(rec.Body)
		assert.True(t, strings.Contains(string(body), "pick_grader_points_awarded_total 3"))
	})

	t.Run("healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		health := func(context.Context) error { return nil }
		NewMetricsHandler(reg, health).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("unhealthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		health := func(context.Context) error { return errors.New("db down") }
		NewMetricsHandler(reg, health).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "db down")
	})
}
