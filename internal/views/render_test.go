package views

import (
	"strings"
	"testing"
)

func TestRenderAppComposesFrame(t *testing.T) {
	out := RenderApp(AppData{
		Header:       "mindflow | view: Tasks",
		LeftPane:     "tasks:\n> [RED] [Todo] Ship release",
		RightPane:    "stats:\nproductivity-score: 73/100",
		StatusLine:   "status: task added: Ship release",
		Footer:       "keys: 1-8 views",
		Notification: "notification: [DUE] Ship release at 17:00",
	})

	for _, want := range []string{
		"mindflow | view: Tasks",
		"Ship release",
		"productivity-score: 73/100",
		"status: task added",
		"notification: [DUE]",
		"keys: 1-8 views",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in frame:\n%s", want, out)
		}
	}
}

func TestRenderAppOmitsEmptySections(t *testing.T) {
	out := RenderApp(AppData{Header: "mindflow", LeftPane: "left", RightPane: "right"})
	if strings.Contains(out, "notification") {
		t.Fatalf("expected no notification block: %q", out)
	}
	full := RenderApp(AppData{Header: "mindflow", LeftPane: "left", RightPane: "right", Footer: "f", Notification: "n"})
	if len(strings.Split(full, "\n")) <= len(strings.Split(out, "\n")) {
		t.Fatal("expected footer and notification to add lines")
	}
}

func TestRenderMarkdown(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("expected empty output for blank input, got: %q", got)
	}
	got := RenderMarkdown("Take a **short** break.")
	if !strings.Contains(got, "short") {
		t.Fatalf("expected rendered text to survive, got: %q", got)
	}
}
