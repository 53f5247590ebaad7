package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jdoc/internal/ast"
	"jdoc/internal/config"
	"jdoc/internal/diag"
	"jdoc/internal/dispatch"
	"jdoc/internal/edit"
	"jdoc/internal/jparse"
	"jdoc/internal/source"
	"jdoc/internal/ui"
)

// batchAction distinguishes the generate and remove pipelines; everything
// around the per-element operation is shared.
type batchAction int

const (
	actionGenerate batchAction = iota
	actionRemove
)

type batchOptions struct {
	action         batchAction
	settings       config.Settings
	dryRun         bool
	interactive    bool
	jobs           int
	quiet          bool
	maxDiagnostics int
}

// runBatch drives the full pipeline: expand paths, parse in parallel, then
// write file by file in sequence.
func runBatch(cmd *cobra.Command, args []string, opts batchOptions) error {
	files, err := jparse.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no java files found")
		return nil
	}

	fileSet := source.NewFileSet()
	results, err := jparse.ParseFiles(cmd.Context(), fileSet, files, opts.maxDiagnostics, opts.jobs)
	if err != nil {
		return err
	}

	selections := map[int][]ast.NodeID{}
	if opts.interactive {
		aborted := false
		selections, aborted, err = pickElements(results)
		if err != nil {
			return err
		}
		if aborted {
			fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return nil
		}
	}

	journal := &edit.Journal{}
	useUI := !opts.quiet && !opts.interactive && len(results) > 1 && isTerminal(os.Stdout)

	var total dispatch.Summary
	var failedFiles int
	runOne := func(i int, r jparse.FileResult, emit func(ui.Event)) {
		if r.Tree == nil {
			failedFiles++
			emit(ui.Event{File: r.Path, Status: ui.StatusError})
			return
		}
		emit(ui.Event{File: r.Path, Stage: stageFor(opts.action), Status: ui.StatusWorking})
		d := &dispatch.Dispatcher{
			FS:       fileSet,
			Settings: opts.settings,
			Reporter: diag.BagReporter{Bag: r.Bag},
			Journal:  journal,
			DryRun:   opts.dryRun,
		}
		only := selection(opts.interactive, selections, i)
		var sum dispatch.Summary
		var runErr error
		if opts.action == actionRemove {
			sum, runErr = d.Remove(r.Tree, only)
		} else {
			sum, runErr = d.Generate(r.Tree, only)
		}
		total.Written += sum.Written
		total.Kept += sum.Kept
		total.Skipped += sum.Skipped
		total.Failed += sum.Failed
		if runErr != nil || sum.Failed > 0 {
			failedFiles++
			emit(ui.Event{File: r.Path, Status: ui.StatusError})
			return
		}
		emit(ui.Event{File: r.Path, Status: ui.StatusDone})
	}

	if useUI {
		runBatchWithUI(batchTitle(opts), results, runOne)
	} else {
		for i, r := range results {
			runOne(i, r, func(ui.Event) {})
		}
	}

	for _, r := range results {
		printBag(cmd.OutOrStdout(), fileSet, r.Bag, opts.quiet)
	}
	printSummary(cmd, opts, total, len(results))

	if failedFiles > 0 {
		return fmt.Errorf("%d of %d files failed", failedFiles, len(results))
	}
	return nil
}

func stageFor(action batchAction) ui.Stage {
	if action == actionRemove {
		return ui.StageWrite
	}
	return ui.StageGenerate
}

func selection(interactive bool, selections map[int][]ast.NodeID, i int) []ast.NodeID {
	if !interactive {
		return nil
	}
	if ids, ok := selections[i]; ok {
		return ids
	}
	// Nothing picked for this file: an empty non-nil slice keeps the
	// dispatcher from falling back to the full batch.
	return []ast.NodeID{}
}

func batchTitle(opts batchOptions) string {
	if opts.action == actionRemove {
		return "removing javadocs"
	}
	if opts.dryRun {
		return "generating javadocs (dry run)"
	}
	return "generating javadocs"
}

// runBatchWithUI runs the sequential write loop behind a Bubble Tea
// progress view.
func runBatchWithUI(title string, results []jparse.FileResult, runOne func(int, jparse.FileResult, func(ui.Event))) {
	events := make(chan ui.Event, 256)
	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = r.Path
	}
	done := make(chan struct{})
	go func() {
		sink := ui.ChannelSink{Ch: events}
		for i, r := range results {
			runOne(i, r, sink.Emit)
		}
		close(events)
		close(done)
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, paths, events), tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		// Fall back to silent completion; the batch itself keeps going.
		<-done
		return
	}
	<-done
}

// pickElements shows the interactive picker over every collected element of
// every parsed file and returns the per-file node selection.
func pickElements(results []jparse.FileResult) (map[int][]ast.NodeID, bool, error) {
	if !isTerminal(os.Stdout) {
		return nil, false, fmt.Errorf("--interactive requires a terminal")
	}

	type elemRef struct {
		file int
		node ast.NodeID
	}
	var refs []elemRef
	var items []ui.PickItem
	for i, r := range results {
		if r.Tree == nil {
			continue
		}
		for _, id := range dispatch.Collect(r.Tree) {
			n := r.Tree.Get(id)
			refs = append(refs, elemRef{file: i, node: id})
			items = append(items, ui.PickItem{
				Label:      fmt.Sprintf("%s %s", n.Kind, n.Decl.Name),
				Detail:     filepath.Base(r.Path),
				Documented: dispatch.HasComment(r.Tree, id),
			})
		}
	}
	if len(items) == 0 {
		return map[int][]ast.NodeID{}, false, nil
	}

	program := tea.NewProgram(ui.NewPickerModel("select declarations", items), tea.WithOutput(os.Stdout))
	model, err := program.Run()
	if err != nil {
		return nil, false, err
	}
	indices, aborted := ui.Selected(model)
	if aborted {
		return nil, true, nil
	}
	selections := map[int][]ast.NodeID{}
	for _, idx := range indices {
		ref := refs[idx]
		selections[ref.file] = append(selections[ref.file], ref.node)
	}
	return selections, false, nil
}

func printSummary(cmd *cobra.Command, opts batchOptions, sum dispatch.Summary, files int) {
	if opts.quiet {
		return
	}
	verb := "documented"
	if opts.action == actionRemove {
		verb = "cleaned"
	}
	line := fmt.Sprintf("%s %s elements in %d files (kept %d, skipped %d, failed %d)",
		verb, color.GreenString("%d", sum.Written), files, sum.Kept, sum.Skipped, sum.Failed)
	if opts.dryRun {
		line += " [dry run]"
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
}
