package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [paths...]",
	Aliases: []string{"rm"},
	Short:   "Remove javadoc comments from java files",
	Long: `Remove the javadoc comments of every declaration in the given files
or directories. Plain block and line comments are left alone.`,
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().Bool("dry-run", false, "compute everything but write nothing to disk")
	removeCmd.Flags().BoolP("interactive", "i", false, "pick declarations interactively")
	removeCmd.Flags().Int("jobs", 0, "max parallel workers for the parse phase (0=auto)")
}

func runRemove(cmd *cobra.Command, args []string) error {
	quiet, maxDiagnostics, err := applyRootFlags(cmd)
	if err != nil {
		return err
	}
	settings, err := loadSettings(args)
	if err != nil {
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
		action:         actionRemove,
		settings:       settings,
		dryRun:         dryRun,
		interactive:    interactive,
		jobs:           jobs,
		quiet:          quiet,
		maxDiagnostics: maxDiagnostics,
	})
}
