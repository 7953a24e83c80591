package source

import (
	"path/filepath"
	"sort"
)

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// buildLineIndex records the offset of every '\n' byte. Line N (1-based)
// spans from just past the (N-1)th newline through the Nth newline.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- i < len(content) <= max uint32 by contract
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line:col. A '\n' byte itself
// belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Number of newlines strictly before off = number of fully completed lines.
	n := sort.Search(len(lineIdx), func(i int) bool {
		return lineIdx[i] >= off
	})

	var lineStart uint32
	if n > 0 {
		lineStart = lineIdx[n-1] + 1
	}
	return LineCol{Line: uint32(n) + 1, Col: off - lineStart + 1} // #nosec G115 -- n <= len(lineIdx) <= max uint32
}

func normalizePath(p string) string {
	// one canonical form for cross-platform diffs
	return filepath.ToSlash(filepath.Clean(p))
}
