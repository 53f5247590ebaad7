package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jdoc/internal/diag"
	"jdoc/internal/source"
)

type colorMode string

const (
	colorModeAuto colorMode = "auto"
	colorModeOn   colorMode = "on"
	colorModeOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorModeAuto, nil
	case "on":
		return colorModeOn, nil
	case "off":
		return colorModeOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// applyRootFlags resolves the persistent flags shared by every subcommand
// and switches global color state accordingly.
func applyRootFlags(cmd *cobra.Command) (quiet bool, maxDiagnostics int, err error) {
	colorValue, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, 0, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(colorValue)
	if err != nil {
		return false, 0, err
	}
	switch mode {
	case colorModeOn:
		color.NoColor = false
	case colorModeOff:
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}

	quiet, err = cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, 0, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return false, 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return quiet, maxDiagnostics, nil
}

var (
	sevErrorColor = color.New(color.FgRed, color.Bold)
	sevWarnColor  = color.New(color.FgYellow)
	sevInfoColor  = color.New(color.FgCyan)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return sevErrorColor
	case diag.SevWarning:
		return sevWarnColor
	default:
		return sevInfoColor
	}
}

// printBag writes sorted diagnostics as path:line:col lines. Infos are
// suppressed under --quiet.
func printBag(out io.Writer, fileSet *source.FileSet, bag *diag.Bag, quiet bool) {
	if bag == nil {
		return
	}
	bag.Sort()
	for _, d := range bag.Items() {
		if quiet && d.Severity == diag.SevInfo {
			continue
		}
		loc := "<unknown>"
		if f := fileSet.Get(d.Primary.File); f != nil {
			start, _ := fileSet.Resolve(d.Primary)
			loc = fmt.Sprintf("%s:%d:%d", fileSet.RelPath(d.Primary.File), start.Line, start.Col)
		}
		sev := severityColor(d.Severity).Sprint(d.Severity.String())
		fmt.Fprintf(out, "%s: %s[%s]: %s\n", loc, sev, d.Code.ID(), d.Message)
	}
}
