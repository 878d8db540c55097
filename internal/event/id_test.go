package event

import (
	"regexp"
	"strings"
	"testing"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestGenerateID_Shape(t *testing.T) {
	id := GenerateID("Jane Doe", "Summer Gala", "2026-07-04")

	if !slugRe.MatchString(id) {
		t.Fatalf("id %q is not a clean slug", id)
	}
	if len(id) > 60 {
		t.Fatalf("id %q exceeds 60 chars", id)
	}
	if !strings.HasPrefix(id, "jane-doe-summer-gala-2026-07-04-") {
		t.Fatalf("unexpected slug prefix: %q", id)
	}
	suffix := id[strings.LastIndex(id, "-")+1:]
	if len(suffix) != 4 {
		t.Fatalf("expected 4-char suffix, got %q", suffix)
	}
}

func TestGenerateID_SuffixVaries(t *testing.T) {
	a := GenerateID("Jane Doe", "Summer Gala", "2026-07-04")
	b := GenerateID("Jane Doe", "Summer Gala", "2026-07-04")
	if a == b {
		t.Fatalf("expected distinct ids across calls, got %q twice", a)
	}
}

func TestGenerateID_CollapsesSeparatorRuns(t *testing.T) {
	id := GenerateID("  A & B Events!! ", "--Launch  Party--", "")

	if !slugRe.MatchString(id) {
		t.Fatalf("id %q has leading/trailing or doubled hyphens", id)
	}
	if !strings.HasPrefix(id, "a-b-events-launch-party-") {
		t.Fatalf("unexpected slug: %q", id)
	}
}

func TestGenerateID_TruncatesLongInputs(t *testing.T) {
	long := strings.Repeat("very long planner name ", 10)
	id := GenerateID(long, "annual shareholder meeting", "2026-12-31")
	if len(id) != 60 {
		t.Fatalf("expected truncation to 60 chars, got %d (%q)", len(id), id)
	}
}
