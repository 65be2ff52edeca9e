package format

import "fmt"

// Occurrence renders one assertion site as it appears in the verification
// report: indented, path and line joined grep-style, then the matched text.
func Occurrence(path string, line int, context string) string {
	return fmt.Sprintf("  %s:%d:%s", path, line, context)
}

// DuplicateHeader renders the banner above one duplicated code's block.
func DuplicateHeader(code string) string {
	return fmt.Sprintf("%sDUPLICATE IDS:%s %s%s%s", Red, Reset, Bold, code, Reset)
}

// SentinelHeader renders the banner above the unassigned-code block.
func SentinelHeader() string {
	return Yellow + "ZERO_CODE:" + Reset
}

// Summary renders the closing verdict of a verification pass.
func Summary(ok bool, next int) string {
	verdict := Red + "false" + Reset
	if ok {
		verdict = Green + "true" + Reset
	}
	return fmt.Sprintf("ok: %s\nnext: %d", verdict, next)
}
