package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

func TestMiddlewareAndExposition(t *testing.T) {
	m := New()
	h := m.Middleware("/api/pods", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/pods", nil))

	m.StatusOverride(domain.StatusAvailable)
	m.PositionUpdate()
	m.SeriesGenerated(domain.FrameWeek)
	m.ObserveFleet([]domain.Pod{{Status: domain.StatusMaintenance}, {Status: domain.StatusMaintenance}})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`podmon_http_requests_total{route="/api/pods",status="404"} 1`,
		`podmon_status_overrides_total{status="available"} 1`,
		`podmon_position_updates_total 1`,
		`podmon_series_generated_total{frame="week"} 1`,
		`podmon_pods{status="maintenance"} 2`,
		`podmon_pods{status="available"} 0`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %q:\n%s", want, body)
		}
	}
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.PositionUpdate()
	fams, err := b.Gatherer().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range fams {
		if f.GetName() == "podmon_position_updates_total" && f.GetMetric()[0].GetCounter().GetValue() != 0 {
			t.Fatalf("registries share state")
		}
	}
}
