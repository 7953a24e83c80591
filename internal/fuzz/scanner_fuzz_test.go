package fuzztests

import (
	"testing"

	"vlisp/internal/diag"
	"vlisp/internal/lexer"
	"vlisp/internal/source"
	"vlisp/internal/testkit"
	"vlisp/internal/token"
)

func FuzzScanner(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.vl", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

		var tokens []token.Token
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if tok.Kind == token.Invalid {
				continue
			}
			tokens = append(tokens, tok)
		}

		// The scanner stops at the first defect.
		if bag.Len() > 1 {
			t.Fatalf("scanner reported %d diagnostics, want at most 1:\n%s",
				bag.Len(), diag.FormatShortDiagnostics(bag.Items(), fs, false))
		}
		if err := testkit.CheckTokenInvariants(file, tokens); err != nil {
			t.Fatalf("token invariants on %q: %v", input, err)
		}
	})
}
