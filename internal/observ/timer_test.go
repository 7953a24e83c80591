package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("scan")
	timer.End(idx, "5 tokens")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "scan" || report.Phases[0].Note != "5 tokens" {
		t.Errorf("unexpected phase %+v", report.Phases[0])
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(0, "nope")
	timer.End(-1, "nope")
	if len(timer.Report().Phases) != 0 {
		t.Error("out-of-range End must not create phases")
	}
}

func TestTimerAddAndTotals(t *testing.T) {
	timer := NewTimer()
	timer.Add("scan", 10*time.Millisecond, "")
	timer.Add("build", 5*time.Millisecond, "")

	report := timer.Report()
	if report.TotalMS != 15 {
		t.Errorf("expected total 15ms, got %v", report.TotalMS)
	}
}

func TestTimerMergeFoldsSameName(t *testing.T) {
	a := NewTimer()
	a.Add("scan", 10*time.Millisecond, "")
	b := NewTimer()
	b.Add("scan", 5*time.Millisecond, "")
	b.Add("build", 2*time.Millisecond, "")

	a.Merge(b)
	report := a.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases after merge, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "scan" || report.Phases[0].DurationMS != 15 {
		t.Errorf("scan phases were not folded: %+v", report.Phases[0])
	}
	if report.TotalMS != 17 {
		t.Errorf("expected total 17ms, got %v", report.TotalMS)
	}
}

func TestTimerSummaryShape(t *testing.T) {
	timer := NewTimer()
	timer.Add("scan", 2*time.Millisecond, "3 files")
	summary := timer.Summary()
	if !strings.HasPrefix(summary, "timings:\n") {
		t.Errorf("summary must start with a header, got %q", summary)
	}
	if !strings.Contains(summary, "scan") || !strings.Contains(summary, "// 3 files") {
		t.Errorf("summary missing phase line: %q", summary)
	}
	if !strings.Contains(summary, "total") {
		t.Errorf("summary missing total line: %q", summary)
	}
}

func TestTimerWriteJSON(t *testing.T) {
	timer := NewTimer()
	timer.Add("build", 1*time.Millisecond, "")
	var buf strings.Builder
	if err := timer.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	for _, fragment := range []string{`"total_ms"`, `"phases"`, `"name": "build"`} {
		if !strings.Contains(buf.String(), fragment) {
			t.Errorf("JSON missing %s: %s", fragment, buf.String())
		}
	}
}
