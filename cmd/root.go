package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/codemill/errcodes/internal/config"
	"github.com/codemill/errcodes/internal/format"
	"github.com/codemill/errcodes/internal/linemap"
	"github.com/codemill/errcodes/internal/project"
)

const errorHelp = `
ERRORS DETECTED. To correct, run "errcodes --fix" to replace zero codes.
Other errors require manual correction.
`

// RunCheck audits the tree for assertion-code errors and, with --fix,
// repairs unassigned codes in place. Exit status: 0 when the check passes
// (or every error was repaired), 1 when errors remain, 2 on fatal
// conditions such as a bare assert or an empty corpus.
func RunCheck(args []string) {
	fs := flag.NewFlagSet("errcodes", flag.ExitOnError)

	fix := fs.Bool("fix", false, "Replace zero codes in source files with fresh unique codes")
	quiet := fs.Bool("q", false, "Suppress output when the check passes")
	fs.BoolVar(quiet, "quiet", false, "Suppress output when the check passes")
	jsonOut := fs.Bool("json", false, "Output the full report as JSON")
	rootFlag := fs.String("root", "", "Tree to audit (default: ERRCODES_ROOT, git toplevel, or cwd)")
	configFlag := fs.String("config", "", "Path to errcodes.toml (default: <root>/errcodes.toml)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `errcodes: audit assertion codes for uniqueness.

Scans the source tree for assertion macro calls, verifies that every numeric
code is unique, and reports the reserved zero code as unassigned.

Usage:
    errcodes                  # verify the tree
    errcodes --fix            # also replace zero codes with fresh unique ones
    errcodes -q               # quiet when the check passes
    errcodes --json           # machine-readable report
    errcodes --root <dir>     # audit a specific tree
    errcodes --config <file>  # explicit errcodes.toml

Re-run errcodes without --fix after fixing to confirm a clean tree.
`)
	}
	fs.Parse(args)

	root := *rootFlag
	if root == "" {
		var err error
		root, err = project.FindRoot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
	}

	cfg := config.Default()
	cfgPath := *configFlag
	if cfgPath == "" {
		cfgPath, _ = config.Find(root)
	}
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
	}

	result, err := runScan(project.ScanRoot(root, cfg.Prefix), cfg)
	if err != nil {
		// Bare asserts and I/O failures abort the run with no partial report.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	ok := len(result.Findings) == 0
	if ok && *quiet {
		return
	}

	next, err := result.NextCode()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Zero sites usually means the scan scope is wrong; check --root and errcodes.toml.")
		os.Exit(2)
	}

	lines := linemap.New()

	if *jsonOut {
		if err := writeJSON(os.Stdout, result, ok, next, lines); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		if !ok {
			os.Exit(1)
		}
		return
	}

	printReport(result, lines)
	fmt.Println(format.Summary(ok, next))

	if ok {
		return
	}
	if !*fix {
		fmt.Print(errorHelp)
		os.Exit(1)
	}
	if !cmdFix(result, next, lines) {
		os.Exit(1)
	}
}
