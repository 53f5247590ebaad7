package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"jdoc/internal/cache"
	"jdoc/internal/diag"
	"jdoc/internal/dispatch"
	"jdoc/internal/jparse"
	"jdoc/internal/source"
)

var statusCmd = &cobra.Command{
	Use:   "status [paths...]",
	Short: "Show javadoc coverage per file",
	Long: `Show how many declarations carry a javadoc comment in each file.
Coverage is cached by content digest, so unchanged files are not re-parsed.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Bool("no-cache", false, "ignore and bypass the coverage cache")
	statusCmd.Flags().Bool("drop-cache", false, "clear the coverage cache before running")
	statusCmd.Flags().Int("jobs", 0, "max parallel workers for the parse phase (0=auto)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	quiet, maxDiagnostics, err := applyRootFlags(cmd)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	files, err := jparse.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no java files found")
		return nil
	}

	var c *cache.DiskCache
	if !noCache {
		if c, err = cache.Open("jdoc"); err != nil {
			// Cache trouble never blocks status; run uncached.
			c = nil
		}
	}
	if dropCache && c != nil {
		if err := c.DropAll(); err != nil {
			return err
		}
	}

	covByPath := make(map[string]cache.Coverage, len(files))
	var misses []string
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		key := sha256.Sum256(content)
		var cov cache.Coverage
		if ok, _ := c.Get(key, &cov); ok {
			covByPath[path] = cov
			continue
		}
		misses = append(misses, path)
	}

	if len(misses) > 0 {
		fileSet := source.NewFileSet()
		results, err := jparse.ParseFiles(cmd.Context(), fileSet, misses, maxDiagnostics, jobs)
		if err != nil {
			return err
		}
		runBag := diag.NewBag(maxDiagnostics)
		for _, r := range results {
			runBag.Merge(r.Bag)
			if r.Tree == nil {
				continue
			}
			counts := dispatch.Measure(r.Tree)
			cov := cache.Coverage{
				Path:             r.Path,
				Documented:       counts.Documented(),
				Total:            counts.Total(),
				ClassDocumented:  counts.ClassDocumented,
				ClassTotal:       counts.ClassTotal,
				MethodDocumented: counts.MethodDocumented,
				MethodTotal:      counts.MethodTotal,
				FieldDocumented:  counts.FieldDocumented,
				FieldTotal:       counts.FieldTotal,
			}
			covByPath[r.Path] = cov
			if r.Bag != nil && r.Bag.HasWarnings() {
				// A degraded parse makes the tally unreliable; recount
				// next run instead of caching it.
				continue
			}
			if f := fileSet.Get(r.FileID); f != nil {
				_ = c.Put(f.Hash, &cov)
			}
		}
		printBag(cmd.ErrOrStderr(), fileSet, runBag, quiet)
	}

	printCoverageTable(cmd, files, covByPath)
	return nil
}

func printCoverageTable(cmd *cobra.Command, files []string, covByPath map[string]cache.Coverage) {
	out := cmd.OutOrStdout()
	pathWidth := len("FILE")
	for _, path := range files {
		if w := runewidth.StringWidth(path); w > pathWidth {
			pathWidth = w
		}
	}

	pad := func(s string, width int) string {
		return s + strings.Repeat(" ", max(0, width-runewidth.StringWidth(s)))
	}
	fmt.Fprintf(out, "%s  %8s  %8s  %8s  %9s  %5s\n",
		pad("FILE", pathWidth), "CLASSES", "METHODS", "FIELDS", "TOTAL", "%")

	var sumDoc, sumTotal int
	for _, path := range files {
		cov, ok := covByPath[path]
		if !ok {
			fmt.Fprintf(out, "%s  %s\n", pad(path, pathWidth), color.RedString("parse failed"))
			continue
		}
		sumDoc += cov.Documented
		sumTotal += cov.Total
		fmt.Fprintf(out, "%s  %8s  %8s  %8s  %9s  %s\n",
			pad(path, pathWidth),
			ratio(cov.ClassDocumented, cov.ClassTotal),
			ratio(cov.MethodDocumented, cov.MethodTotal),
			ratio(cov.FieldDocumented, cov.FieldTotal),
			ratio(cov.Documented, cov.Total),
			percent(cov.Documented, cov.Total))
	}
	if len(files) > 1 {
		fmt.Fprintf(out, "%s  %8s  %8s  %8s  %9s  %s\n",
			pad("total", pathWidth), "", "", "", ratio(sumDoc, sumTotal), percent(sumDoc, sumTotal))
	}
}

func ratio(documented, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", documented, total)
}

func percent(documented, total int) string {
	if total == 0 {
		return "    -"
	}
	pct := 100 * documented / total
	text := fmt.Sprintf("%4d%%", pct)
	switch {
	case pct >= 80:
		return color.GreenString("%s", text)
	case pct >= 50:
		return color.YellowString("%s", text)
	default:
		return color.RedString("%s", text)
	}
}
