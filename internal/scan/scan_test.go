package scan

import (
	"errors"
	"strings"
	"testing"
)

func TestScanSingleSite(t *testing.T) {
	text := `void f() { uassert(12345, "bad thing", x > 0); }`

	sites, err := Scan("src/f.cpp", []byte(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sites) != 1 {
		t.Fatalf("expected 1 site, got %d", len(sites))
	}

	s := sites[0]
	if s.Code != "12345" {
		t.Errorf("Code = %q, want %q", s.Code, "12345")
	}
	if s.SourceFile != "src/f.cpp" {
		t.Errorf("SourceFile = %q, want %q", s.SourceFile, "src/f.cpp")
	}
	if s.Context != "uassert(12345" {
		t.Errorf("Context = %q, want %q", s.Context, "uassert(12345")
	}
	if got := text[:s.CodeEndOffset]; !strings.HasSuffix(got, "12345") {
		t.Errorf("CodeEndOffset %d does not end at the code: %q", s.CodeEndOffset, got)
	}
}

func TestScanVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		code string
	}{
		{name: "uassert", text: `uassert(10, "m", ok);`, code: "10"},
		{name: "uasserted", text: `uasserted(11, "m");`, code: "11"},
		{name: "massert", text: `massert(12, "m", ok);`, code: "12"},
		{name: "msgasserted", text: `msgasserted(13, "m");`, code: "13"},
		{name: "uassert_no_trace", text: `uassertNoTrace(14, "m", ok);`, code: "14"},
		{name: "spaced_call", text: "uassert (\n    15 , \"m\", ok);", code: "15"},
		{name: "db_exception", text: `throw DBException(16, "m");`, code: "16"},
		{name: "assertion_exception", text: `throw AssertionException(17, "m");`, code: "17"},
		{name: "fassert", text: `fassert(18, ok);`, code: "18"},
		{name: "fassert_failed", text: `fassertFailed(19);`, code: "19"},
		{name: "fassert_failed_with_status", text: `fassertFailedWithStatus(20, status);`, code: "20"},
		{name: "fassert_failed_no_trace", text: `fassertFailedNoTrace(21);`, code: "21"},
		{name: "fassert_status_ok", text: `fassertStatusOK(22, status);`, code: "22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sites, err := Scan("x.cpp", []byte(tt.text))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sites) != 1 {
				t.Fatalf("expected 1 site, got %d", len(sites))
			}
			if sites[0].Code != tt.code {
				t.Errorf("Code = %q, want %q", sites[0].Code, tt.code)
			}
		})
	}
}

func TestScanPatternThenTextualOrder(t *testing.T) {
	// fassert appears first in the text but its pattern is declared last, so
	// the uassert sites come first in the result.
	text := "fassert(30, ok);\nuassert(31, \"m\", ok);\nuassert(32, \"m\", ok);\n"

	sites, err := Scan("x.cpp", []byte(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var codes []string
	for _, s := range sites {
		codes = append(codes, s.Code)
	}
	want := []string{"31", "32", "30"}
	if len(codes) != len(want) {
		t.Fatalf("got codes %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("got codes %v, want %v", codes, want)
		}
	}
}

func TestScanNoMarkers(t *testing.T) {
	sites, err := Scan("x.cpp", []byte("int main() { return 0; }"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sites) != 0 {
		t.Errorf("expected no sites, got %d", len(sites))
	}
}

func TestScanBareAssert(t *testing.T) {
	text := "uassert(40, \"m\", ok);\n    assert (x > 0);\n"

	sites, err := Scan("src/bad.cpp", []byte(text))
	if !errors.Is(err, ErrBareAssert) {
		t.Fatalf("expected ErrBareAssert, got %v", err)
	}
	if len(sites) != 0 {
		t.Errorf("expected no sites on dialect violation, got %d", len(sites))
	}
	if !strings.Contains(err.Error(), "src/bad.cpp") {
		t.Errorf("error should name the offending file: %v", err)
	}
}

func TestScanBareAssertNotMidLine(t *testing.T) {
	// Qualified spellings and mid-line mentions are not bare asserts.
	text := "uassert(41, \"m\", ok);\n// callers should not assert (see docs)\n"

	if _, err := Scan("x.cpp", []byte(text)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScanSentinel(t *testing.T) {
	sites, err := Scan("x.cpp", []byte(`uassert(0, "unassigned", ok);`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sites) != 1 || sites[0].Code != SentinelCode {
		t.Fatalf("expected one sentinel site, got %+v", sites)
	}
}
