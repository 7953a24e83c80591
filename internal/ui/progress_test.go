package ui

import (
	"strings"
	"testing"

	"vlisp/internal/pipeline"
)

func TestStatusLabels(t *testing.T) {
	cases := []struct {
		stage  pipeline.Stage
		status pipeline.Status
		want   string
	}{
		{pipeline.StageScan, pipeline.StatusQueued, "queued"},
		{pipeline.StageScan, pipeline.StatusWorking, "scanning"},
		{pipeline.StageBuild, pipeline.StatusWorking, "building"},
		{pipeline.StageVerify, pipeline.StatusWorking, "verifying"},
		{pipeline.StageBuild, pipeline.StatusDone, "done"},
		{pipeline.StageScan, pipeline.StatusError, "error"},
	}
	for _, c := range cases {
		if got := statusLabel(c.stage, c.status); got != c.want {
			t.Errorf("statusLabel(%q, %q) = %q, want %q", c.stage, c.status, got, c.want)
		}
	}
}

func TestApplyEventUpdatesItem(t *testing.T) {
	events := make(chan pipeline.Event)
	model := NewProgressModel("check", []string{"a.vl", "b.vl"}, events).(*progressModel)

	model.applyEvent(pipeline.Event{File: "a.vl", Stage: pipeline.StageScan, Status: pipeline.StatusWorking})
	if model.items[0].status != "scanning" {
		t.Fatalf("status = %q, want scanning", model.items[0].status)
	}
	if model.items[1].status != "queued" {
		t.Fatalf("untouched file changed to %q", model.items[1].status)
	}

	// Events for unknown files are dropped.
	model.applyEvent(pipeline.Event{File: "ghost.vl", Status: pipeline.StatusDone})
	if len(model.items) != 2 {
		t.Fatalf("item count changed to %d", len(model.items))
	}
}

func TestViewListsFiles(t *testing.T) {
	events := make(chan pipeline.Event)
	model := NewProgressModel("check", []string{"lib/core.vl"}, events).(*progressModel)
	model.applyEvent(pipeline.Event{File: "lib/core.vl", Stage: pipeline.StageBuild, Status: pipeline.StatusDone})

	view := model.View()
	if !strings.Contains(view, "lib/core.vl") {
		t.Fatalf("view does not list the file:\n%s", view)
	}
	if !strings.Contains(view, "done") {
		t.Fatalf("view does not show the done status:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	got := truncate("a/very/long/path/to/some/file.vl", 12)
	if !strings.HasSuffix(got, "...") || len(got) > 12 {
		t.Fatalf("truncate long = %q", got)
	}
}
