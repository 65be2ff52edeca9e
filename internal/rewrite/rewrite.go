// Package rewrite patches unassigned assertion codes in place. Only the
// sentinel digit at each site's recorded offset changes; every other byte of
// a patched file stays identical.
package rewrite

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/codemill/errcodes/internal/linemap"
	"github.com/codemill/errcodes/internal/scan"
	"github.com/codemill/errcodes/internal/track"
)

// ErrStaleOffset reports a failed pre-write consistency check: the byte just
// before a site's recorded offset was no longer the sentinel digit, so the
// file changed since the scan and patching it would corrupt it.
var ErrStaleOffset = errors.New("stale offset, file changed since scan")

// Patch describes one applied repair.
type Patch struct {
	Site   scan.Site
	Code   int    // newly assigned code
	Line   int    // 1-based source line of the site
	Before string // the source line before the patch
	After  string // the source line after the patch
}

// FileError records a file whose patches were abandoned.
type FileError struct {
	File string
	Err  error
}

// Outcome summarizes one fix session.
type Outcome struct {
	// Patched holds applied repairs in patch order: files in path order,
	// sites within a file by descending offset.
	Patched []Patch
	// Skipped holds nonzero-coded error sites, which always need a human
	// decision and are never auto-repaired.
	Skipped []scan.Site
	// Failed holds files abandoned by the stale-offset check or an I/O
	// failure. Such a file is left exactly as it was on disk.
	Failed []FileError
	// Next is the first allocation code not consumed by this session.
	Next int
}

// Apply repairs every sentinel-coded site on the error list, allocating
// consecutive codes from next in patch order. Sites are deduplicated by
// identity, grouped per file, and patched in descending offset order so that
// applying one edit never invalidates the recorded offset of a pending
// earlier edit in the same file.
//
// A failed consistency check abandons that file without writing; other files
// are still repaired. Line numbers come from the shared cache, which indexed
// each file before any rewrite.
func Apply(findings []track.Finding, next int, lines *linemap.Cache) *Outcome {
	out := &Outcome{Next: next}

	var zero []scan.Site
	seen := make(map[scan.Site]bool)
	for _, f := range findings {
		if f.Site.Code != scan.SentinelCode {
			out.Skipped = append(out.Skipped, f.Site)
			continue
		}
		if seen[f.Site] {
			continue
		}
		seen[f.Site] = true
		zero = append(zero, f.Site)
	}

	sort.Slice(zero, func(i, j int) bool {
		if zero[i].SourceFile != zero[j].SourceFile {
			return zero[i].SourceFile < zero[j].SourceFile
		}
		return zero[i].CodeEndOffset < zero[j].CodeEndOffset
	})

	for start := 0; start < len(zero); {
		end := start
		for end < len(zero) && zero[end].SourceFile == zero[start].SourceFile {
			end++
		}
		applyFile(zero[start:end], lines, out)
		start = end
	}
	return out
}

// applyFile patches one file's sites, given in ascending offset order. All
// edits are staged in memory and written in a single pass; nothing is written
// if any site fails its consistency check.
func applyFile(sites []scan.Site, lines *linemap.Cache, out *Outcome) {
	path := sites[0].SourceFile

	info, err := os.Stat(path)
	if err != nil {
		out.Failed = append(out.Failed, FileError{File: path, Err: err})
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		out.Failed = append(out.Failed, FileError{File: path, Err: err})
		return
	}

	text := string(data)
	next := out.Next
	var patched []Patch

	// Descending offset order: a splice only moves bytes at and after its
	// own position, so every pending (smaller) offset stays valid.
	for i := len(sites) - 1; i >= 0; i-- {
		site := sites[i]
		off := site.CodeEndOffset

		line, err := lines.Line(path, off)
		if err != nil {
			out.Failed = append(out.Failed, FileError{File: path, Err: err})
			return
		}

		if off <= 0 || off > len(text) || text[off-1] != '0' {
			out.Failed = append(out.Failed, FileError{
				File: path,
				Err:  fmt.Errorf("%s: offset %d: %w", path, off, ErrStaleOffset),
			})
			return
		}

		before := lineText(text, line)
		text = text[:off-1] + strconv.Itoa(next) + text[off:]
		patched = append(patched, Patch{
			Site:   site,
			Code:   next,
			Line:   line,
			Before: before,
			After:  lineText(text, line),
		})
		next++
	}

	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		out.Failed = append(out.Failed, FileError{File: path, Err: err})
		return
	}
	out.Patched = append(out.Patched, patched...)
	out.Next = next
}

// lineText returns the 1-based nth line of text without its newline.
func lineText(text string, n int) string {
	rest := text
	for ; n > 1; n-- {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			return ""
		}
		rest = rest[i+1:]
	}
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i]
	}
	return rest
}
