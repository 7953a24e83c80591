// Package format renders trees back into canonical source text: names
// bare, strings quoted verbatim, numeric atoms with their suffix, lists
// with single spaces, one top-level form per line. The output is
// re-scannable; CheckRoundTrip verifies that re-reading it yields a
// structurally identical tree.
package format
