package progress

import (
	"io"
	"time"
)

// Config holds the configuration for progress display
type Config struct {
	// Enabled turns the display on. A disabled Progress writes nothing.
	Enabled bool

	// Width is the maximum line width (0 = auto-detect, 80 when unknown)
	Width int

	// RefreshRate is the minimum delay between two redraws. Zero redraws on
	// every update.
	RefreshRate time.Duration

	// Output is where the status line is drawn, os.Stderr when nil
	Output io.Writer
}

// Status represents the current state of a walk
type Status struct {
	// CurrentItem is the directory being walked
	CurrentItem string

	// Directories entered so far
	Directories int

	// Files listed so far
	Files int
}

// Progress draws a single, continuously rewritten status line
type Progress interface {
	// Start begins progress display with an initial message
	Start(message string)

	// Update redraws the status line
	Update(status Status)

	// Complete clears the status line
	Complete()
}
