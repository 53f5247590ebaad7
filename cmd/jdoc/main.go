package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jdoc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "jdoc",
	Short: "Javadoc skeleton generator for Java sources",
	Long: `jdoc generates, updates and removes javadoc comments in Java source
files. Generated skeletons merge with hand-written text instead of
overwriting it.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
