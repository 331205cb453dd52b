// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/danielhkuo/nosh/models"
	"github.com/danielhkuo/nosh/smartdefaults"
)

var _ smartdefaults.Observer = (*Metrics)(nil)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func TestObserveBuild(t *testing.T) {
	m := New()

	m.ObserveBuild(true, false)
	m.ObserveBuild(true, false)
	m.ObserveBuild(false, false)
	m.ObserveBuild(false, true)

	tests := map[string]float64{
		"learned":  2,
		"fallback": 1,
		"degraded": 1,
	}
	for outcome, want := range tests {
		got := counterValue(t, m.defaultsBuilt.WithLabelValues(outcome))
		if got != want {
			t.Errorf("builds_total{outcome=%q} = %v, want %v", outcome, got, want)
		}
	}
}

func TestObserveQuizAndStoreErrors(t *testing.T) {
	m := New()

	m.ObserveQuiz(models.PersonalityScoreResult{Primary: models.PersonalityThrillSeeker, Confidence: 0.9})
	m.ObserveStoreError("fetch")
	m.ObserveStoreError("fetch")

	if got := counterValue(t, m.quizScored.WithLabelValues("thrill_seeker")); got != 1 {
		t.Errorf("quiz scored = %v, want 1", got)
	}
	if got := counterValue(t, m.storeErrors.WithLabelValues("fetch")); got != 2 {
		t.Errorf("store errors = %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("GET /health", http.MethodGet, http.StatusOK, 15*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "nosh_http_request_duration_seconds") {
		t.Errorf("expected request histogram in output, got:\n%s", w.Body.String())
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveBuild(true, false)
	m.ObserveStoreError("upsert")
	m.ObserveRequest("GET /", http.MethodGet, http.StatusOK, time.Millisecond)
	m.ObserveQuiz(models.PersonalityScoreResult{})
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
}
