package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jdoc/internal/ast"
	"jdoc/internal/dispatch"
	"jdoc/internal/jparse"
	"jdoc/internal/source"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file.java>",
	Short: "Dump the declarations the generator sees in a file",
	Long: `Parse one file and print its documentable declarations in processing
order, with signature details and whether each one already has a javadoc.
Useful for debugging what generate would touch.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func runOutline(cmd *cobra.Command, args []string) error {
	quiet, maxDiagnostics, err := applyRootFlags(cmd)
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	results, err := jparse.ParseFiles(cmd.Context(), fileSet, args, maxDiagnostics, 1)
	if err != nil {
		return err
	}
	r := results[0]
	printBag(cmd.ErrOrStderr(), fileSet, r.Bag, quiet)
	if r.Tree == nil {
		return fmt.Errorf("failed to parse %s", r.Path)
	}

	out := cmd.OutOrStdout()
	kindColor := color.New(color.FgCyan)
	docColor := color.New(color.FgGreen)
	for _, id := range dispatch.Collect(r.Tree) {
		n := r.Tree.Get(id)
		start, _ := fileSet.Resolve(n.Span)
		mark := " "
		if dispatch.HasComment(r.Tree, id) {
			mark = docColor.Sprint("*")
		}
		fmt.Fprintf(out, "%s %4d  %-12s %s%s\n",
			mark, start.Line, kindColor.Sprint(n.Kind.String()), n.Decl.Name, signature(n))
	}
	return nil
}

func signature(n *ast.Node) string {
	d := n.Decl
	var b strings.Builder
	if len(d.TypeParams) > 0 {
		b.WriteString("<" + strings.Join(d.TypeParams, ", ") + ">")
	}
	switch n.Kind {
	case ast.KindMethod, ast.KindConstructor:
		parts := make([]string, 0, len(d.Params))
		for _, p := range d.Params {
			parts = append(parts, p.Type+" "+p.Name)
		}
		b.WriteString("(" + strings.Join(parts, ", ") + ")")
		if d.ReturnType != "" {
			b.WriteString(" " + d.ReturnType)
		}
		if len(d.Throws) > 0 {
			b.WriteString(" throws " + strings.Join(d.Throws, ", "))
		}
	case ast.KindField:
		if d.ReturnType != "" {
			b.WriteString(" " + d.ReturnType)
		}
	}
	return b.String()
}
