package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	ShowFixes bool
}

// TokenOpts configures the aligned token table.
type TokenOpts struct {
	// Offsets switches positions from line:col to raw byte offsets.
	Offsets bool
}
