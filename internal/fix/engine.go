// Package fix selects and applies the text edits that diagnostics carry.
// Producers only attach data; every disk write happens here.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"vlisp/internal/diag"
	"vlisp/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines how fixes are selected.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the single best fix and stops.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every fix that does not need human review.
	ApplyModeAll
	// ApplyModeID applies exactly the fix with the requested ID.
	ApplyModeID
)

// ApplyOptions configures selection and disk behavior.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun stages and reports everything without touching the disk.
	DryRun bool
	// NoBackup suppresses the .bak copy written next to each changed file.
	NoBackup bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	Path          string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on one file.
type FileChange struct {
	Path      string
	Backup    string // empty when no backup was written
	EditCount int
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
	DryRun      bool
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects the fixes the diagnostics carry, selects a subset
// according to opts, and applies them to the files in fs. Selected fixes
// are accepted in span order; a fix whose edits overlap an already
// accepted edit is skipped, so surviving edits can be spliced bottom-up
// without offset bookkeeping.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{DryRun: opts.DryRun}
	if fs == nil {
		return result, fmt.Errorf("fix: nil FileSet")
	}

	candidates := gather(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, selectionSkips := choose(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, applySkips, changes, err := applyCandidates(fs, selected, opts)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, applySkips...)
	result.FileChanges = append(result.FileChanges, changes...)

	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gather flattens diagnostics into candidates. Fixes without edits are
// dropped, and a fix without an ID gets one synthesized from its
// diagnostic so ApplyModeID can still address it.
func gather(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders candidates deterministically: by primary span,
// then insertion order, code, preference, ID, and title.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred
		}
		if candidates[i].fix.ID != candidates[j].fix.ID {
			return candidates[i].fix.ID < candidates[j].fix.ID
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

// choose picks the candidates a mode allows. Manual-review fixes are
// never auto-selected; naming one by ID counts as the human review.
func choose(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		var selected []candidate
		var skipped []SkippedFix
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.ApplicabilityManualReview {
				skipped = append(skipped, SkippedFix{
					ID:     cand.fix.ID,
					Title:  cand.fix.Title,
					Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability),
				})
				continue
			}
			selected = append(selected, cand)
		}
		return selected, skipped
	case ApplyModeOnce:
		var fallback *candidate
		var skipped []SkippedFix
		for i := range candidates {
			cand := candidates[i]
			if cand.fix.Applicability == diag.ApplicabilityManualReview {
				skipped = append(skipped, SkippedFix{
					ID:     cand.fix.ID,
					Title:  cand.fix.Title,
					Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability),
				})
				continue
			}
			if cand.fix.Applicability == diag.ApplicabilityAlwaysSafe {
				return []candidate{cand}, skipped
			}
			if fallback == nil {
				fallback = &candidates[i]
			}
		}
		if fallback != nil {
			return []candidate{*fallback}, skipped
		}
		return nil, skipped
	default:
		return nil, nil
	}
}

// applyCandidates validates and accepts candidates in order, then splices
// each dirty file once and writes it out.
func applyCandidates(fs *source.FileSet, selected []candidate, opts ApplyOptions) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	accepted := make(map[source.FileID][]diag.FixEdit)
	editCount := make(map[source.FileID]int)

	var applied []AppliedFix
	var skipped []SkippedFix

	for _, cand := range selected {
		if reason := vetCandidate(fs, accepted, cand); reason != "" {
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: reason,
			})
			continue
		}
		for _, edit := range cand.fix.Edits {
			accepted[edit.Span.File] = append(accepted[edit.Span.File], edit)
			editCount[edit.Span.File]++
		}
		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			Path:          pathOf(fs, cand.diag.Primary.File),
			EditCount:     len(cand.fix.Edits),
		})
	}

	if len(accepted) == 0 {
		return applied, skipped, nil, nil
	}

	fileIDs := make([]source.FileID, 0, len(accepted))
	for id := range accepted {
		fileIDs = append(fileIDs, id)
	}
	sort.Slice(fileIDs, func(i, j int) bool {
		return fs.Get(fileIDs[i]).Path < fs.Get(fileIDs[j]).Path
	})

	var changes []FileChange
	for _, id := range fileIDs {
		file := fs.Get(id)
		buf := spliceEdits(file.Content, accepted[id])

		change := FileChange{Path: file.Path, EditCount: editCount[id]}
		if !opts.DryRun {
			backup, err := writeFixed(file, buf, opts.NoBackup)
			if err != nil {
				return applied, skipped, changes, err
			}
			change.Backup = backup
		}
		changes = append(changes, change)
	}
	return applied, skipped, changes, nil
}

// vetCandidate returns a skip reason, or "" when every edit of the
// candidate is applicable.
func vetCandidate(fs *source.FileSet, accepted map[source.FileID][]diag.FixEdit, cand candidate) string {
	for i, edit := range cand.fix.Edits {
		file := fs.Get(edit.Span.File)
		if file == nil {
			return "edit targets an unknown file"
		}
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if edit.Span.Start > edit.Span.End || int(edit.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		for _, prev := range accepted[edit.Span.File] {
			if spansConflict(prev.Span, edit.Span) {
				return fmt.Sprintf("overlaps an already selected edit in %s", file.Path)
			}
		}
		for _, prev := range cand.fix.Edits[:i] {
			if prev.Span.File == edit.Span.File && spansConflict(prev.Span, edit.Span) {
				return "fix edits overlap each other"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edit spans overlap. Spans are
// half-open [Start, End). Two zero-width inserts never conflict; an
// insert conflicts with a replacement that strictly contains its
// position; two replacements conflict on any overlap.
func spansConflict(a, b source.Span) bool {
	if a.Start == a.End && b.Start == b.End {
		return false
	}
	if a.Start == a.End {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// spliceEdits applies non-overlapping edits to a copy of content,
// highest offset first so earlier spans stay valid.
func spliceEdits(content []byte, edits []diag.FixEdit) []byte {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start > sorted[j].Span.Start
		}
		return sorted[i].Span.End > sorted[j].Span.End
	})

	buf := append([]byte(nil), content...)
	for _, e := range sorted {
		start, end := int(e.Span.Start), int(e.Span.End)
		suffix := append([]byte(nil), buf[end:]...)
		buf = append(append(buf[:start], e.NewText...), suffix...)
	}
	return buf
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// writeFixed writes buf to the file's path, restoring a stripped BOM and
// keeping the original mode. It returns the backup path, if one was made.
func writeFixed(file *source.File, buf []byte, noBackup bool) (string, error) {
	if file.Flags&source.FileHadBOM != 0 {
		buf = append(append([]byte(nil), utf8BOM...), buf...)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode()
	}

	backup := ""
	if !noBackup {
		original := file.Content
		if file.Flags&source.FileHadBOM != 0 {
			original = append(append([]byte(nil), utf8BOM...), original...)
		}
		backup = file.Path + ".bak"
		if err := os.WriteFile(backup, original, mode); err != nil {
			return "", fmt.Errorf("write backup %s: %w", backup, err)
		}
	}

	if err := os.WriteFile(file.Path, buf, mode); err != nil {
		return backup, fmt.Errorf("write %s: %w", file.Path, err)
	}
	return backup, nil
}

func pathOf(fs *source.FileSet, id source.FileID) string {
	if file := fs.Get(id); file != nil {
		return file.Path
	}
	return ""
}
