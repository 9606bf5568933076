package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/NaMinhyeok/order-practice/internal/adapters/metrics"
)

func TestMetrics_ObserveHTTP(t *testing.T) {
	m := metrics.New()

	m.ObserveHTTP("POST", "/api/v1/orders", 201, 15*time.Millisecond)
	m.ObserveHTTP("POST", "/api/v1/orders", 201, 30*time.Millisecond)
	m.ObserveHTTP("GET", "", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("POST", "/api/v1/orders", "201")); got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("expected unmatched route to be counted once, got %v", got)
	}
}

func TestMetrics_ObserveJob(t *testing.T) {
	m := metrics.New()
	now := time.Unix(1_700_000_000, 0)

	m.ObserveJob("send-orders", 3, nil, now)
	m.ObserveJob("send-orders", 0, errors.New("db down"), now)

	if got := testutil.ToFloat64(m.JobRuns.WithLabelValues("send-orders", "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.JobRuns.WithLabelValues("send-orders", "failure")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.JobProcessed.WithLabelValues("send-orders")); got != 3 {
		t.Fatalf("expected 3 processed, got %v", got)
	}
	if got := testutil.ToFloat64(m.JobLastRun.WithLabelValues("send-orders")); got != float64(now.Unix()) {
		t.Fatalf("expected last run %d, got %v", now.Unix(), got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveHTTP("GET", "/api/v1/products", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "order_practice_http_requests_total") {
		t.Fatal("expected request counter in exposition")
	}
}
