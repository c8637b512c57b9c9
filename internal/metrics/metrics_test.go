package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, r *Recorder, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestRecorder_Observe(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Observe(true, 3*time.Second, 12, false)
	r.Observe(true, time.Second, 4, false)
	r.Observe(false, 30*time.Second, 0, false)
	r.Observe(true, time.Minute, 5000, true)

	if got := counterValue(t, r, "url2pdf_captures_total", map[string]string{"status": StatusSuccess}); got != 3 {
		t.Errorf("success captures = %v, want 3", got)
	}
	if got := counterValue(t, r, "url2pdf_captures_total", map[string]string{"status": StatusFailure}); got != 1 {
		t.Errorf("failed captures = %v, want 1", got)
	}
	if got := counterValue(t, r, "url2pdf_settle_capped_total", nil); got != 1 {
		t.Errorf("capped = %v, want 1", got)
	}
}

func TestRecorder_WriteFile(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Observe(true, 2*time.Second, 8, false)
	r.Finish(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "url2pdf.prom")
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics file: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`url2pdf_captures_total{status="success"} 1`,
		"url2pdf_capture_duration_seconds_count 1",
		"url2pdf_last_run_timestamp_seconds 1.7e+09",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics file missing %q\n%s", want, out)
		}
	}
}

func TestRecorder_WriteFile_MissingDir(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	err := r.WriteFile(filepath.Join(t.TempDir(), "missing", "url2pdf.prom"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
