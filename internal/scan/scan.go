// Package scan extracts assertion-code sites from raw source text.
//
// Matching is purely lexical: the patterns below recognize the historical
// family of assertion macro spellings and capture the leading numeric code
// argument. Assertion-like text inside comments or string literals is matched
// too; that is a known limitation of the lexical approach.
package scan

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Site is one matched assertion call.
type Site struct {
	// SourceFile is the path of the owning file.
	SourceFile string
	// CodeEndOffset is the byte offset immediately after the final digit of
	// the code literal. Valid only against the text read at scan time.
	CodeEndOffset int
	// Context is the exact matched substring, from the macro name through the
	// last digit of the code.
	Context string
	// Code is the numeric code as it appears in the source. Kept as text to
	// preserve the literal spelling; compare as an integer.
	Code string
}

// SentinelCode is the reserved "not yet assigned" code.
const SentinelCode = "0"

// ErrBareAssert reports a disallowed unqualified assertion call. It is fatal
// for the whole run, not just the file it appears in.
var ErrBareAssert = errors.New("bare assert prohibited, replace with [umf]assert")

// patterns is the fixed ordered family of recognized call forms. Each pattern
// captures exactly one leading numeric literal and ends at its last digit, so
// the end of the match is the code-end offset.
var patterns = []*regexp.Regexp{
	// uassert, uasserted, massert, masserted, msgassert, msgasserted, and
	// their NoTrace spellings
	regexp.MustCompile(`(?:u|m(?:sg)?)asser(?:t|ted)(?:NoTrace)?\s*\(\s*(\d+)`),
	// DBException, AssertionException constructors
	regexp.MustCompile(`(?:DB|Assertion)Exception\s*\(\s*(\d+)`),
	// fassert, fassertFailed, and the WithStatus / NoTrace / StatusOK spellings
	regexp.MustCompile(`fassert(?:Failed)?(?:WithStatus)?(?:NoTrace)?(?:StatusOK)?\s*\(\s*(\d+)`),
}

var bareAssert = regexp.MustCompile(`(?m)^\s*assert *\(`)

// markers are cheap containment probes. A file containing none of them cannot
// match any pattern, so the regexps are skipped entirely.
var markers = []string{"assert", "Exception"}

// Scan extracts every assertion site from one file's raw text. Sites are
// ordered by pattern, then by position within each pattern.
//
// If the text contains a bare unqualified assert call, Scan returns
// ErrBareAssert wrapped with the file path and no sites.
func Scan(path string, text []byte) ([]Site, error) {
	s := string(text)

	if !containsAny(s, markers) {
		return nil, nil
	}

	if bareAssert.MatchString(s) {
		return nil, fmt.Errorf("%s: %w", path, ErrBareAssert)
	}

	var sites []Site
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatchIndex(s, -1) {
			sites = append(sites, Site{
				SourceFile:    path,
				CodeEndOffset: m[1],
				Context:       s[m[0]:m[1]],
				Code:          s[m[2]:m[3]],
			})
		}
	}
	return sites, nil
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
