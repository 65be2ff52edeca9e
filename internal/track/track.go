// Package track classifies the stream of assertion sites found by a scan:
// every code is fresh, a duplicate of an earlier site, or the reserved
// unassigned sentinel. It also computes the next free code for fix mode.
package track

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/codemill/errcodes/internal/scan"
)

// Reason labels why a site landed on the error list.
type Reason string

const (
	// ReasonDuplicate marks a code shared by two or more sites.
	ReasonDuplicate Reason = "duplicate"
	// ReasonSentinel marks the reserved unassigned code.
	ReasonSentinel Reason = "zero"
)

// Finding is one error-list entry: a site plus why it is a problem.
type Finding struct {
	Site   scan.Site
	Reason Reason
}

// ErrNoSites reports an allocation requested over an empty corpus. Zero sites
// means the scan scope is misconfigured, not that everything is fine.
var ErrNoSites = errors.New("no assertion sites found")

// Result is the classification of one full scan pass. It is built once by
// Tracker.Finish and not mutated afterwards.
type Result struct {
	// Sites holds every site in discovery order.
	Sites []scan.Site
	// Seen maps each code to its first (canonical) site.
	Seen map[string]scan.Site
	// Dups maps each duplicated code to all of its sites in discovery order,
	// canonical first. Every list has at least two entries.
	Dups map[string][]scan.Site
	// DupCodes lists the duplicated codes in the order their second
	// occurrence was discovered. Iteration over Dups uses this order.
	DupCodes []string
	// Sentinels holds every zero-coded site.
	Sentinels []scan.Site
	// Findings is the flat ordered error list. A duplicate's canonical site
	// is appended once, immediately before its first later sibling, so every
	// entry pairs back to its first-seen sibling.
	Findings []Finding
}

// Clean reports whether the pass found no duplicates and no sentinels.
func (r *Result) Clean() bool {
	return len(r.Dups) == 0 && len(r.Sentinels) == 0
}

// NextCode returns the smallest code strictly greater than every observed
// code: a streaming maximum plus one. It fails with ErrNoSites on an empty
// corpus rather than defaulting.
func (r *Result) NextCode() (int, error) {
	if len(r.Sites) == 0 {
		return 0, ErrNoSites
	}
	highest := 0
	for _, s := range r.Sites {
		n, err := strconv.Atoi(s.Code)
		if err != nil {
			return 0, fmt.Errorf("site %s has non-numeric code %q: %w", s.SourceFile, s.Code, err)
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// Tracker accumulates sites across all files of one pass. Add sites in
// discovery order, then call Finish exactly once. The tracker does no file
// I/O and never mutates a site.
type Tracker struct {
	result Result
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{result: Result{
		Seen: make(map[string]scan.Site),
		Dups: make(map[string][]scan.Site),
	}}
}

// Add records one site. The first occurrence of a code is canonical; on the
// first duplicate the canonical site joins the duplicate list and the error
// list, then every later occurrence is appended to both.
func (t *Tracker) Add(site scan.Site) {
	r := &t.result
	r.Sites = append(r.Sites, site)

	if site.Code == scan.SentinelCode {
		r.Sentinels = append(r.Sentinels, site)
	}

	first, ok := r.Seen[site.Code]
	if !ok {
		r.Seen[site.Code] = site
		return
	}

	if _, dup := r.Dups[site.Code]; !dup {
		r.DupCodes = append(r.DupCodes, site.Code)
		r.Dups[site.Code] = append(r.Dups[site.Code], first)
		r.Findings = append(r.Findings, Finding{Site: first, Reason: ReasonDuplicate})
	}
	r.Dups[site.Code] = append(r.Dups[site.Code], site)
	r.Findings = append(r.Findings, Finding{Site: site, Reason: ReasonDuplicate})
}

// Finish closes the pass and returns the classification. A zero code is an
// error even when it appears only once, so the first sentinel site gains a
// finding of its own, separate from the duplicate path.
func (t *Tracker) Finish() *Result {
	r := &t.result
	if first, ok := r.Seen[scan.SentinelCode]; ok {
		r.Findings = append(r.Findings, Finding{Site: first, Reason: ReasonSentinel})
	}
	return r
}
