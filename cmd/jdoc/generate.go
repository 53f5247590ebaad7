package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jdoc/internal/config"
	"jdoc/internal/diag"
)

var generateCmd = &cobra.Command{
	Use:     "generate [paths...]",
	Aliases: []string{"gen"},
	Short:   "Generate javadoc comments for java files",
	Long: `Generate javadoc skeletons for every documentable declaration in the
given files or directories. Existing comments are merged: hand-written
descriptions and tag bodies survive, stale tags are dropped, missing tags
are filled in.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("element", "", "comma-separated element kinds to document (class,method,field)")
	generateCmd.Flags().String("mode", "", "existing-comment handling (keep|update|replace)")
	generateCmd.Flags().String("author", "", "author name for @author tags on classes")
	generateCmd.Flags().Bool("dry-run", false, "compute everything but write nothing to disk")
	generateCmd.Flags().BoolP("interactive", "i", false, "pick declarations interactively")
	generateCmd.Flags().Int("jobs", 0, "max parallel workers for the parse phase (0=auto)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	quiet, maxDiagnostics, err := applyRootFlags(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings(args)
	if err != nil {
		return fmt.Errorf("%s: %w", diag.CfgInvalid.ID(), err)
	}
	if err := applyGenerateOverrides(cmd, &settings); err != nil {
		return err
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return fmt.Errorf("failed to get interactive flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	return runBatch(cmd, args, batchOptions{
		action:         actionGenerate,
		settings:       settings,
		dryRun:         dryRun,
		interactive:    interactive,
		jobs:           jobs,
		quiet:          quiet,
		maxDiagnostics: maxDiagnostics,
	})
}

// loadSettings resolves jdoc.toml relative to the first path argument so
// running from outside the project still finds its config.
func loadSettings(args []string) (config.Settings, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	return config.Load(start)
}

func applyGenerateOverrides(cmd *cobra.Command, settings *config.Settings) error {
	if modeValue, err := cmd.Flags().GetString("mode"); err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	} else if modeValue != "" {
		mode, err := config.ParseMode(modeValue)
		if err != nil {
			return err
		}
		settings.Generate.Mode = mode
	}

	if elementValue, err := cmd.Flags().GetString("element"); err != nil {
		return fmt.Errorf("failed to get element flag: %w", err)
	} else if elementValue != "" {
		var elements []string
		for _, e := range strings.Split(elementValue, ",") {
			e = strings.TrimSpace(e)
			switch e {
			case "class", "method", "field":
				elements = append(elements, e)
			default:
				return fmt.Errorf("unknown element %q (class, method, field)", e)
			}
		}
		settings.Generate.Elements = elements
	}

	if author, err := cmd.Flags().GetString("author"); err != nil {
		return fmt.Errorf("failed to get author flag: %w", err)
	} else if author != "" {
		settings.Author = author
	}
	return nil
}
