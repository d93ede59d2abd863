package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sagararora86/ember/pkg/filesys"
)

const segmentExt = ".ember"

// segmentFileName builds the on-disk name for a segment. Segment indices
// are ephemeral replay-time labels assigned in enumeration order on every
// open, rather than identity that must survive restarts, so the name
// carries no timestamp.
func segmentFileName(prefix string, index int) string {
	return fmt.Sprintf("%s-%05d%s", prefix, index, segmentExt)
}

// discoverSegments returns the segment file paths under dir matching
// prefix, ordered by the numeric index embedded in their filename (not by
// lexicographic filename order, so index 10 sorts after index 9).
func discoverSegments(dir, prefix string) ([]string, error) {
	pattern := filepath.Join(dir, prefix+"-*"+segmentExt)
	paths, err := filesys.ReadDir(pattern)
	if err != nil {
		return nil, err
	}

	type indexedPath struct {
		path string
		idx  int
	}
	indexed := make([]indexedPath, 0, len(paths))
	for _, p := range paths {
		idx, ok := parseSegmentIndex(filepath.Base(p), prefix)
		if !ok {
			continue
		}
		indexed = append(indexed, indexedPath{path: p, idx: idx})
	}

	sort.Slice(indexed, func(i, j int) bool { return indexed[i].idx < indexed[j].idx })

	ordered := make([]string, len(indexed))
	for i, ip := range indexed {
		ordered[i] = ip.path
	}
	return ordered, nil
}

// parseSegmentIndex extracts the numeric index from a segment filename of
// the form "<prefix>-NNNNN.ember".
func parseSegmentIndex(filename, prefix string) (int, bool) {
	if !strings.HasPrefix(filename, prefix+"-") || !strings.HasSuffix(filename, segmentExt) {
		return 0, false
	}
	middle := strings.TrimSuffix(strings.TrimPrefix(filename, prefix+"-"), segmentExt)
	idx, err := strconv.Atoi(middle)
	if err != nil {
		return 0, false
	}
	return idx, true
}
