// Package lexer turns source bytes into tokens.
//
// The scan is a single left-to-right pass. Outside a string literal,
// whitespace (space, tab, newline, carriage return) and the three
// delimiter characters '(' ')' '"' end the pending atom; every other byte
// accumulates into it. Inside a string literal no byte is special except
// the closing quote; the language has no escape sequences.
//
// A finished atom is classified by direct trailing 3-byte comparison:
// "f32" first, then "i32", first match wins. A matching suffix requires
// the whole prefix to parse as the corresponding 32-bit value; otherwise
// the atom is a malformed literal, never a fallback name. Atoms without a
// matching suffix are names.
//
// The lexer stops at the first defect: it reports one diagnostic, returns
// a single Invalid token covering the offending span, and yields EOF from
// then on. Callers that want a materialized sequence drain Next until EOF
// and check their reporter's bag.
package lexer
