package format

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// FormatPatch renders one applied repair: the file and line being updated,
// then the source line before and after the patch with the changed region
// highlighted. The BEFORE/AFTER labels are padded to the same width so the
// two lines align when read side by side.
func FormatPatch(path string, line int, before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var out []string
	out = append(out, fmt.Sprintf("UPDATING_FILE: %s:%d", path, line))
	out = append(out, fmt.Sprintf("LINE_%d_BEFORE:%s", line,
		renderSide(diffs, diffmatchpatch.DiffDelete, Red)))
	out = append(out, fmt.Sprintf("LINE_%d_AFTER :%s", line,
		renderSide(diffs, diffmatchpatch.DiffInsert, Green)))
	return strings.Join(out, "\n")
}

// FormatSkip renders a nonzero-coded error site left for a human to resolve.
func FormatSkip(code, path string, line int) string {
	return fmt.Sprintf("SKIPPING NONZERO code=%s: %s:%d", code, path, line)
}

// renderSide reconstructs one side of the diff: equal text plain, the side's
// own changes colored, the opposite side's changes omitted.
func renderSide(diffs []diffmatchpatch.Diff, keep diffmatchpatch.Operation, color string) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case keep:
			b.WriteString(color)
			b.WriteString(d.Text)
			b.WriteString(Reset)
		}
	}
	return strings.TrimRight(b.String(), " \t")
}
