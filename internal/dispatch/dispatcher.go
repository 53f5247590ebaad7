// Package dispatch drives the per-element generation pipeline: collect the
// documentable declarations of a parsed file, synthesize and merge a doc
// model for each, and commit the rendered comment through a write
// transaction. The batch is best effort: one element failing does not stop
// the others, but a file-access failure aborts the whole file.
package dispatch

import (
	"errors"
	"fmt"

	"jdoc/internal/ast"
	"jdoc/internal/config"
	"jdoc/internal/diag"
	"jdoc/internal/doc"
	"jdoc/internal/edit"
	"jdoc/internal/merge"
	"jdoc/internal/render"
	"jdoc/internal/source"
	"jdoc/internal/synth"
)

// Dispatcher runs generation and removal over one parsed file at a time.
// Elements are processed strictly in sequence; only the read-only parse
// phase upstream is ever parallel.
type Dispatcher struct {
	FS       *source.FileSet
	Settings config.Settings
	Reporter diag.Reporter
	Journal  *edit.Journal
	DryRun   bool
}

// Summary counts per-element outcomes of one batch.
type Summary struct {
	Written int
	Kept    int
	Skipped int
	Failed  int
}

func (s Summary) Total() int { return s.Written + s.Kept + s.Skipped + s.Failed }

func (s *Summary) add(other Summary) {
	s.Written += other.Written
	s.Kept += other.Kept
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Generate writes doc comments for every selected element of the tree.
// When only is non-nil it restricts the batch to those elements, keeping
// collect order. A file-access error aborts after the first failure so the
// file reports exactly once.
func (d *Dispatcher) Generate(t *ast.Tree, only []ast.NodeID) (Summary, error) {
	var sum Summary
	for _, id := range d.selection(t, only) {
		outcome, err := d.generateOne(t, id)
		sum.add(outcome)
		if err != nil && isFileAccess(err) {
			return sum, err
		}
	}
	return sum, nil
}

// Remove deletes the doc comments of every selected element.
func (d *Dispatcher) Remove(t *ast.Tree, only []ast.NodeID) (Summary, error) {
	ed := &edit.Editor{Reporter: d.Reporter}
	var sum Summary
	for _, id := range d.selection(t, only) {
		n := t.Get(id)
		if _, ok := Classify(n); !ok || !d.wants(n) {
			sum.Skipped++
			continue
		}
		if existingComment(t, id) == "" {
			sum.Kept++
			continue
		}
		tx := d.transaction()
		if err := tx.Execute(t, func() error { return ed.Remove(t, id) }); err != nil {
			sum.Failed++
			if isFileAccess(err) {
				return sum, err
			}
			continue
		}
		sum.Written++
	}
	return sum, nil
}

func (d *Dispatcher) generateOne(t *ast.Tree, id ast.NodeID) (Summary, error) {
	n := t.Get(id)
	kind, ok := Classify(n)
	if !ok || n.Decl == nil {
		diag.ReportInfo(d.Reporter, diag.GenSkippedKind, n.Span,
			fmt.Sprintf("%s: no generator for this declaration", n.Kind))
		return Summary{Skipped: 1}, nil
	}
	if !d.wants(n) {
		return Summary{Skipped: 1}, nil
	}

	existing := existingComment(t, id)
	if existing != "" && d.Settings.Generate.Mode == config.ModeKeep {
		diag.ReportInfo(d.Reporter, diag.GenKeptExisting, n.Span,
			fmt.Sprintf("%s %s: existing comment kept", kind, n.Decl.Name))
		return Summary{Kept: 1}, nil
	}

	synthesized := synth.Synthesize(factsOf(kind, n.Decl), synth.Options{Author: d.Settings.Author})
	model := synthesized
	var parsed *doc.Model
	if existing != "" {
		p := render.Parse(existing)
		parsed = &p
		if d.Settings.Generate.Mode == config.ModeUpdate {
			model = merge.Merge(parsed, synthesized)
		}
	}

	// A comment that already parses to the target model would only be
	// rewritten byte-identically; skip the write.
	if parsed != nil && model.Equal(parsed) {
		diag.ReportInfo(d.Reporter, diag.GenNothingToDo, n.Span,
			fmt.Sprintf("%s %s: comment already up to date", kind, n.Decl.Name))
		return Summary{Kept: 1}, nil
	}
	rendered := render.Render(&model)

	ed := &edit.Editor{Reporter: d.Reporter}
	tx := d.transaction()
	if err := tx.Execute(t, func() error { return ed.Place(t, id, rendered) }); err != nil {
		return Summary{Failed: 1}, err
	}
	return Summary{Written: 1}, nil
}

func (d *Dispatcher) selection(t *ast.Tree, only []ast.NodeID) []ast.NodeID {
	order := Collect(t)
	if only == nil {
		return order
	}
	pick := make(map[ast.NodeID]bool, len(only))
	for _, id := range only {
		pick[id] = true
	}
	var out []ast.NodeID
	for _, id := range order {
		if pick[id] {
			out = append(out, id)
		}
	}
	return out
}

func (d *Dispatcher) wants(n *ast.Node) bool {
	return d.Settings.WantsKind(n.Kind) && d.Settings.WantsVisibility(n.Decl.Visibility())
}

func (d *Dispatcher) transaction() *edit.Transaction {
	return &edit.Transaction{
		FS:       d.FS,
		Reporter: d.Reporter,
		Journal:  d.Journal,
		DryRun:   d.DryRun,
	}
}

func existingComment(t *ast.Tree, elem ast.NodeID) string {
	first := t.FirstChild(elem)
	if !first.IsValid() || t.Get(first).Kind != ast.KindDocComment {
		return ""
	}
	return t.LeafText(first)
}

func isFileAccess(err error) bool {
	return errors.Is(err, edit.ErrFileNotValid) ||
		errors.Is(err, edit.ErrFileReadOnly) ||
		errors.Is(err, edit.ErrFileStale)
}
