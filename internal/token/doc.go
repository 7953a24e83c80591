// Package token defines the lexical token kinds of the reader.
// Invariants:
//   - Tokens never own text; Token.Span slices the original source buffer.
//   - String token spans exclude the surrounding quote characters.
//   - Int32/Float32 tokens carry their parsed value alongside the span of
//     the full literal including its i32/f32 suffix.
//   - EOF and Invalid are streaming sentinels and never appear in a
//     materialized token sequence.
package token
