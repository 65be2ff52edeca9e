package cmd

import (
	"fmt"
	"os"

	"github.com/codemill/errcodes/internal/format"
	"github.com/codemill/errcodes/internal/linemap"
	"github.com/codemill/errcodes/internal/rewrite"
	"github.com/codemill/errcodes/internal/track"
)

// cmdFix repairs every unassigned code on the error list and reports what it
// did. Nonzero duplicates are skipped (those need a human decision), and a
// file that failed its consistency check is reported as an incomplete fix.
// Returns true only when nothing was left unrepaired.
func cmdFix(result *track.Result, next int, lines *linemap.Cache) bool {
	out := rewrite.Apply(result.Findings, next, lines)

	for _, s := range out.Skipped {
		fmt.Println(format.FormatSkip(s.Code, s.SourceFile, lineFor(lines, s)))
	}
	for _, p := range out.Patched {
		fmt.Println(format.FormatPatch(p.Site.SourceFile, p.Line, p.Before, p.After))
	}
	for _, f := range out.Failed {
		fmt.Fprintf(os.Stderr, "INCOMPLETE FIX: %s: %v\n", f.File, f.Err)
	}

	return len(out.Skipped) == 0 && len(out.Failed) == 0
}
