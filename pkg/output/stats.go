package output

import (
	"fmt"
	"time"
)

// Summary holds the numbers reported on the console after a run
type Summary struct {
	Root       string
	OutputPath string

	Directories int
	Files       int
	TextFiles   int
	Ignored     int
	Errors      int

	// Reported is the number of files whose content made it into the report
	Reported int

	// Excluded is the number of text files left out to avoid self-reference
	Excluded int

	// Skipped is the number of text files that could not be opened at report time
	Skipped int

	ReportBytes int64
	Duration    time.Duration
}

// BinaryFiles is the number of listed files that were not classified as text
func (s Summary) BinaryFiles() int {
	return s.Files - s.TextFiles
}

// FormatSize renders a byte count with a binary unit suffix
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDuration renders d rounded for humans
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
