// Package walk enumerates the candidate source files of an audit. It is pure
// enumeration: no file contents are read here.
package walk

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options selects which files under the root are audited. Patterns are
// doublestar globs matched against slash-separated paths relative to the
// root.
type Options struct {
	Extensions []string // file suffixes to audit, e.g. ".cpp"
	Include    []string // when non-empty, a file must match one of these
	Exclude    []string // files and directories matching any of these are skipped
}

// Sources returns every auditable file under root in sorted order. Excluded
// directories are pruned without descending into them.
func Sources(root string, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if matchesAny(rel, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if !hasExtension(rel, opts.Extensions) {
			return nil
		}
		if matchesAny(rel, opts.Exclude) {
			return nil
		}
		if len(opts.Include) > 0 && !matchesAny(rel, opts.Include) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func matchesAny(rel string, patterns []string) bool {
	for _, p := range patterns {
		// A malformed pattern cannot match anything; keep walking.
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
