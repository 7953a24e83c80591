package diag

import (
	"fmt"
)

// Code is a compact numeric identifier for a diagnostic. Ranges are
// reserved per producer: 1000-1999 lexical, 2000-2999 structural,
// 4000-4999 driver I/O.
type Code uint16

const (
	// UnknownCode is the zero value fallback.
	UnknownCode Code = 0

	// LexUnterminatedString reports a quote opened but never closed
	// before end of input.
	LexUnterminatedString Code = 1001
	// LexMalformedNumericSuffix reports an atom ending in i32/f32 whose
	// prefix does not parse as the corresponding type.
	LexMalformedNumericSuffix Code = 1002

	// SynUnbalancedClose reports a close parenthesis with no open list.
	SynUnbalancedClose Code = 2001
	// SynUnbalancedOpen reports input ending with lists still open.
	SynUnbalancedOpen Code = 2002

	// IOLoadFileError reports a failure to read a source file.
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	LexUnterminatedString:     "Unterminated string literal",
	LexMalformedNumericSuffix: "Malformed numeric suffix",
	SynUnbalancedClose:        "Unbalanced close parenthesis",
	SynUnbalancedOpen:         "Unbalanced open parenthesis",
	IOLoadFileError:           "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
