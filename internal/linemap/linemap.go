// Package linemap converts byte offsets in source files to 1-based line
// numbers, caching one offset table per file for the lifetime of a run.
package linemap

import (
	"fmt"
	"os"
	"sort"
)

// Cache is a read-through cache of per-file line-start tables. Tables are
// built from the on-disk text at first lookup and never refreshed, so results
// are correct only for files that have not been rewritten since. Callers must
// finish all lookups before any rewrite touches the file.
//
// Cache is not safe for concurrent use; the audit is single-threaded.
type Cache struct {
	tables map[string][]int
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{tables: make(map[string][]int)}
}

// Line returns the 1-based line number containing the given byte offset in
// the named file, reading and indexing the file on first use.
func (c *Cache) Line(path string, offset int) (int, error) {
	table, ok := c.tables[path]
	if !ok {
		text, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("indexing lines of %s: %w", path, err)
		}
		table = lineStarts(text)
		c.tables[path] = table
	}
	// Count line starts at or before the offset. The table is strictly
	// increasing, so binary search finds the first start past the offset.
	return sort.Search(len(table), func(i int) bool { return table[i] > offset }), nil
}

// lineStarts returns the strictly increasing table of byte offsets at which
// each line begins. Offset 0 always starts line 1.
func lineStarts(text []byte) []int {
	starts := []int{0}
	for i, b := range text {
		if b == '\n' && i+1 < len(text) {
			starts = append(starts, i+1)
		}
	}
	return starts
}
