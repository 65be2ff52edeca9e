package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codemill/errcodes/internal/config"
	"github.com/codemill/errcodes/internal/format"
	"github.com/codemill/errcodes/internal/linemap"
	"github.com/codemill/errcodes/internal/scan"
	"github.com/codemill/errcodes/internal/track"
	"github.com/codemill/errcodes/internal/walk"
)

// runScan walks the tree, scans every candidate file, and classifies the
// full site stream. A bare assert anywhere aborts the whole scan.
func runScan(scanRoot string, cfg config.Config) (*track.Result, error) {
	files, err := walk.Sources(scanRoot, walk.Options{
		Extensions: cfg.Extensions,
		Include:    cfg.Include,
		Exclude:    cfg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating sources under %s: %w", scanRoot, err)
	}

	tracker := track.NewTracker()
	for _, path := range files {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		sites, err := scan.Scan(path, text)
		if err != nil {
			return nil, err
		}
		for _, s := range sites {
			tracker.Add(s)
		}
	}
	return tracker.Finish(), nil
}

// printReport itemizes every finding: the unassigned sites first, then one
// block per duplicated code listing all of its occurrences.
func printReport(r *track.Result, lines *linemap.Cache) {
	if len(r.Sentinels) > 0 {
		fmt.Println(format.SentinelHeader())
		for _, s := range r.Sentinels {
			fmt.Println(format.Occurrence(s.SourceFile, lineFor(lines, s), s.Context))
		}
	}
	for _, code := range r.DupCodes {
		fmt.Println(format.DuplicateHeader(code))
		for _, s := range r.Dups[code] {
			fmt.Println(format.Occurrence(s.SourceFile, lineFor(lines, s), s.Context))
		}
	}
}

func lineFor(lines *linemap.Cache, s scan.Site) int {
	n, err := lines.Line(s.SourceFile, s.CodeEndOffset)
	if err != nil {
		return 0
	}
	return n
}

type jsonSite struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Context string `json:"context"`
	Message string `json:"message,omitempty"`
}

type jsonDuplicate struct {
	Code  string     `json:"code"`
	Sites []jsonSite `json:"sites"`
}

type jsonReport struct {
	OK         bool            `json:"ok"`
	Next       int             `json:"next"`
	Duplicates []jsonDuplicate `json:"duplicates,omitempty"`
	ZeroCodes  []jsonSite      `json:"zero_codes,omitempty"`
}

// writeJSON emits the full report, including the best-effort human-readable
// message extracted from each site's source line.
func writeJSON(w io.Writer, r *track.Result, ok bool, next int, lines *linemap.Cache) error {
	src := newLineSource()

	report := jsonReport{OK: ok, Next: next}
	for _, code := range r.DupCodes {
		dup := jsonDuplicate{Code: code}
		for _, s := range r.Dups[code] {
			dup.Sites = append(dup.Sites, src.describe(s, lines))
		}
		report.Duplicates = append(report.Duplicates, dup)
	}
	for _, s := range r.Sentinels {
		report.ZeroCodes = append(report.ZeroCodes, src.describe(s, lines))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// lineSource lazily reads whole files so message extraction can see the full
// source line of a site, not just the matched prefix.
type lineSource struct {
	files map[string][]string
}

func newLineSource() *lineSource {
	return &lineSource{files: make(map[string][]string)}
}

func (ls *lineSource) line(path string, n int) string {
	text, ok := ls.files[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			ls.files[path] = nil
			return ""
		}
		text = strings.Split(string(data), "\n")
		ls.files[path] = text
	}
	if n < 1 || n > len(text) {
		return ""
	}
	return text[n-1]
}

func (ls *lineSource) describe(s scan.Site, lines *linemap.Cache) jsonSite {
	line := lineFor(lines, s)
	return jsonSite{
		File:    s.SourceFile,
		Line:    line,
		Code:    s.Code,
		Context: s.Context,
		Message: scan.BestMessage(ls.line(s.SourceFile, line), s.Code),
	}
}
