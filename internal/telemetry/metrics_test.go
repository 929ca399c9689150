package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestMetricsRecordRun(t *testing.T) {
	m := NewMetrics()
	m.RecordRun("corridor", "solved", 31, 2*time.Millisecond)
	m.RecordRun("corridor", "solved", 40, 3*time.Millisecond)
	m.RecordRun("maze", "failed", 1000, 5*time.Millisecond)

	out := scrape(t, m)
	for _, want := range []string{
		`vaultrunner_runs_total{map="corridor",status="solved"} 2`,
		`vaultrunner_runs_total{map="maze",status="failed"} 1`,
		`vaultrunner_steps_total{map="corridor"} 71`,
		`vaultrunner_run_steps_count{map="corridor"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsHistogramBucketsAreCumulative(t *testing.T) {
	m := NewMetrics()
	m.RecordRun("corridor", "solved", 5, time.Millisecond)
	m.RecordRun("corridor", "solved", 20, time.Millisecond)

	out := scrape(t, m)
	// 5 lands in le=10; both land at or below le=25 and above.
	for _, want := range []string{
		`vaultrunner_run_steps_bucket{map="corridor",le="10"} 1`,
		`vaultrunner_run_steps_bucket{map="corridor",le="25"} 2`,
		`vaultrunner_run_steps_bucket{map="corridor",le="+Inf"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsEmptyScrape(t *testing.T) {
	out := scrape(t, NewMetrics())
	if !strings.Contains(out, "# TYPE vaultrunner_runs_total counter") {
		t.Errorf("empty scrape missing type headers:\n%s", out)
	}
}
