package scan

import (
	"regexp"
	"strings"
)

var (
	reOuterQuotes = regexp.MustCompile(`"(.*)"`)
	reQuotePair   = regexp.MustCompile(`" +"`)
	reQuoteStream = regexp.MustCompile(`" *<< *"`)
	reStreamExpr  = regexp.MustCompile(`" *<<[^<]+<< *"`)
	rePlusExpr    = regexp.MustCompile(`" *\+[^+]+\+ *"`)
)

// BestMessage heuristically extracts the human-readable message that follows
// an assertion code on its source line. It is cosmetic, best-effort, and not
// correctness-critical: interpolated expressions collapse to "<X>" and lines
// without a quoted message yield "".
func BestMessage(line, code string) string {
	_, after, found := strings.Cut(line, code)
	if !found || after == "" {
		return ""
	}

	// Trim to outer quotes
	m := reOuterQuotes.FindStringSubmatch(after)
	if m == nil {
		return ""
	}
	msg := m[1]

	// Collapse adjacent literal pairs and stream/concat interpolation
	msg = reQuotePair.ReplaceAllString(msg, "")
	msg = reQuoteStream.ReplaceAllString(msg, "")
	msg = reStreamExpr.ReplaceAllString(msg, "<X>")
	msg = rePlusExpr.ReplaceAllString(msg, "<X>")

	// Drop escaped quotes
	msg = strings.ReplaceAll(msg, `\"`, "")

	// If a double quote survived, cut it and any trailing text
	if i := strings.IndexByte(msg, '"'); i >= 0 {
		msg = msg[:i]
	}

	return strings.TrimSpace(msg)
}
