package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/five82/kitchen/internal/kitchen"
)

var _ kitchen.Recorder = (*Collector)(nil)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("%s metric not found", name)
	return nil
}

func TestObserveRequest_CountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest(http.MethodGet, 200, 100*time.Millisecond)
	c.ObserveRequest(http.MethodGet, 200, 2*time.Second)
	c.ObserveRequest(http.MethodPost, 409, 50*time.Millisecond)

	mf := gather(t, reg, "kitchen_api_requests_total")
	if len(mf.GetMetric()) != 2 {
		t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
	}
	for _, m := range mf.GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		val := m.GetCounter().GetValue()
		switch labels["status_code"] {
		case "200":
			if labels["method"] != "GET" || val != 2 {
				t.Errorf("GET 200 = %v (%v), want 2", val, labels)
			}
		case "409":
			if labels["method"] != "POST" || val != 1 {
				t.Errorf("POST 409 = %v (%v), want 1", val, labels)
			}
		default:
			t.Errorf("unexpected labels: %v", labels)
		}
	}

	hist := gather(t, reg, "kitchen_api_request_duration_seconds")
	var samples uint64
	for _, m := range hist.GetMetric() {
		samples += m.GetHistogram().GetSampleCount()
	}
	if samples != 3 {
		t.Errorf("sample_count = %d, want 3", samples)
	}
}

func TestObserveRequest_Unreachable(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest(http.MethodGet, 0, time.Second)

	mf := gather(t, reg, "kitchen_api_unreachable_total")
	if val := mf.GetMetric()[0].GetCounter().GetValue(); val != 1 {
		t.Errorf("unreachable_total = %v, want 1", val)
	}
}

func TestSessionExpired_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.SessionExpired()
	c.SessionExpired()

	mf := gather(t, reg, "kitchen_session_expired_total")
	if val := mf.GetMetric()[0].GetCounter().GetValue(); val != 2 {
		t.Errorf("session_expired_total = %v, want 2", val)
	}
}

func TestSetupMetricsRoute_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveRequest(http.MethodDelete, 204, time.Millisecond)
	c.SessionExpired()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	SetupMetricsRoute(reg).ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, metric := range []string{"kitchen_api_requests_total", "kitchen_session_expired_total"} {
		if !strings.Contains(string(body), metric) {
			t.Errorf("response body does not contain %q", metric)
		}
	}
}
