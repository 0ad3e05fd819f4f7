package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintSummary writes a short, optionally coloured, description of a finished
// run to w
func PrintSummary(w io.Writer, s Summary, withColors bool) error {
	title := newColor(withColors, color.FgGreen, color.Bold)
	count := newColor(withColors, color.FgCyan)
	warn := newColor(withColors, color.FgYellow)
	faint := newColor(withColors, color.Faint)

	if _, err := fmt.Fprintf(w, "%s %s\n", title.Sprint(AppName), faint.Sprint(s.Root)); err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("  %s directories, %s files (%s text, %s binary)",
			count.Sprint(s.Directories), count.Sprint(s.Files),
			count.Sprint(s.TextFiles), count.Sprint(s.BinaryFiles())),
		fmt.Sprintf("  %s files in report, %s ignored entries",
			count.Sprint(s.Reported), count.Sprint(s.Ignored)),
	}

	if s.Excluded > 0 || s.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("  %s self-excluded, %s unreadable at report time",
			count.Sprint(s.Excluded), warn.Sprint(s.Skipped)))
	}
	if s.Errors > 0 {
		lines = append(lines, warn.Sprintf("  %d entries could not be read", s.Errors))
	}

	lines = append(lines, fmt.Sprintf("  wrote %s (%s) in %s",
		title.Sprint(s.OutputPath), FormatSize(s.ReportBytes), FormatDuration(s.Duration)))

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
