package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/subscriptions", 200, 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/subscriptions", 200, 30*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/subscriptions", 400, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.total.WithLabelValues("GET", "/api/v1/subscriptions", "200")); got != 2 {
		t.Fatalf("expected 2 GET requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.total.WithLabelValues("POST", "/api/v1/subscriptions", "400")); got != 1 {
		t.Fatalf("expected 1 POST request, got %v", got)
	}
}

func TestObserveRequestOnNilMetricsIsSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("", "", 0, 0)
}
