package format

import (
	"strings"
	"testing"
)

// Colors are disabled under go test (stdout is not a terminal), so output
// can be compared as plain text.

func TestFormatPatch(t *testing.T) {
	out := FormatPatch("src/db/query.cpp", 42,
		`    uassert(0, "bad", ok);`,
		`    uassert(10008, "bad", ok);`)

	wantLines := []string{
		"UPDATING_FILE: src/db/query.cpp:42",
		`LINE_42_BEFORE:    uassert(0, "bad", ok);`,
		`LINE_42_AFTER :    uassert(10008, "bad", ok);`,
	}
	got := strings.Split(out, "\n")
	if len(got) != len(wantLines) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(wantLines), out)
	}
	for i, want := range wantLines {
		if got[i] != want {
			t.Errorf("line %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestFormatPatchTrimsTrailingWhitespace(t *testing.T) {
	out := FormatPatch("a.cpp", 7, "uassert(0, x);   ", "uassert(31, x);   ")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, " ") {
			t.Errorf("line has trailing whitespace: %q", line)
		}
	}
}

func TestFormatSkip(t *testing.T) {
	got := FormatSkip("10005", "src/a.cpp", 12)
	want := "SKIPPING NONZERO code=10005: src/a.cpp:12"
	if got != want {
		t.Errorf("FormatSkip = %q, want %q", got, want)
	}
}

func TestOccurrence(t *testing.T) {
	got := Occurrence("src/a.cpp", 3, "uassert(10005")
	want := "  src/a.cpp:3:uassert(10005"
	if got != want {
		t.Errorf("Occurrence = %q, want %q", got, want)
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(true, 10008); got != "ok: true\nnext: 10008" {
		t.Errorf("Summary(true) = %q", got)
	}
	if got := Summary(false, 55); got != "ok: false\nnext: 55" {
		t.Errorf("Summary(false) = %q", got)
	}
}
