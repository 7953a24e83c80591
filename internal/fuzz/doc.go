// Package fuzztests houses fuzz harnesses that push arbitrary bytes
// through the reader front half (source -> scanner -> builder) and check
// the properties that hold on any input: no panics, at most one
// diagnostic, span ordering, and a clean round trip for defect-free
// sources.
package fuzztests
