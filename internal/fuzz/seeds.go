package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // clamp for corpus files
	maxFuzzInput = 1 << 16
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addReadmeSeeds(f)
	addEdgeSeeds(f)
}

// addTestdataSeeds walks the repository testdata tree and adds every
// .vl file it finds.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".vl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addReadmeSeeds harvests the fenced vlisp blocks from the README so
// the documented examples stay in the corpus.
func addReadmeSeeds(f *testing.F) {
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(filepath.Join("..", "..", "README.md"))
	if err != nil {
		return
	}
	var block [][]byte
	inBlock := false
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		trimmed := strings.TrimSpace(string(line))
		if strings.HasPrefix(trimmed, "```vlisp") {
			inBlock = true
			block = block[:0]
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			if inBlock {
				if snippet := clampSeed(bytes.Join(block, []byte{'\n'})); len(snippet) > 0 {
					f.Add(snippet)
				}
			}
			inBlock = false
			block = block[:0]
			continue
		}
		if inBlock {
			block = append(block, line)
		}
	}
}

// addEdgeSeeds covers the shapes the scanner and builder special-case.
func addEdgeSeeds(f *testing.F) {
	seeds := []string{
		"",
		"()",
		"(a)",
		"(add 1i32 2i32)",
		"(scale 2.5f32 -0.5f32 1e3f32)",
		`(print "hello, world")`,
		"(text \"line one\nline two\")",
		`("")`,
		"(a (b (c (d))))",
		strings.Repeat("(", 64) + "x" + strings.Repeat(")", 64),
		"(",
		")",
		"(a))",
		`"unterminated`,
		"(v 12x32)",
		"(v 1i)",
		"(v 2.5f31)",
		"(v 1i321)",
		"-",
		"+",
		"(neg -3i32 +4i32)",
		"a#b$c",
		"( \t\r\n )",
		"\xEF\xBB\xBF(bom)",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
