// Package progress shows what a running walk is doing on a single terminal
// line. Drawing happens synchronously on the caller's goroutine.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sonemaro/treepp/pkg/logger"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

const defaultWidth = 80

type progress struct {
	config Config
	log    logger.Logger
	writer io.Writer
	width  int

	active  bool
	drawn   bool
	limiter *rate.Limiter
}

// New creates a Progress. It is a no-op unless config.Enabled is set.
func New(config Config, log logger.Logger) Progress {
	// a non-positive refresh rate yields an unlimited limiter
	p := &progress{
		config:  config,
		log:     log,
		writer:  config.Output,
		limiter: rate.NewLimiter(rate.Every(config.RefreshRate), 1),
	}
	if p.writer == nil {
		p.writer = os.Stderr
	}

	p.width = config.Width
	if p.width <= 0 {
		p.width = terminalWidth(p.writer)
	}

	p.log.WithFields(logger.Fields{
		"enabled": config.Enabled,
		"width":   p.width,
		"refresh": config.RefreshRate,
	}).Debug("Created progress display")

	return p
}

// IsTerminal reports whether w is a terminal that can host a status line
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (p *progress) Start(message string) {
	if !p.config.Enabled {
		return
	}
	p.active = true
	p.limiter.Allow()
	p.draw(message)
}

func (p *progress) Update(status Status) {
	if !p.config.Enabled || !p.active {
		return
	}

	if !p.limiter.Allow() {
		return
	}

	p.log.WithFields(logger.Fields{
		"item":        status.CurrentItem,
		"directories": status.Directories,
		"files":       status.Files,
	}).Trace("Updating progress")

	p.draw(render(status, p.width))
}

func (p *progress) Complete() {
	if !p.config.Enabled || !p.active {
		return
	}
	p.active = false
	if p.drawn {
		fmt.Fprint(p.writer, "\r"+strings.Repeat(" ", p.width)+"\r")
		p.drawn = false
	}
}

func (p *progress) draw(line string) {
	fmt.Fprint(p.writer, "\r"+fit(line, p.width))
	p.drawn = true
}

// render builds the status text for status, never wider than width
func render(status Status, width int) string {
	counts := fmt.Sprintf("[%d dirs, %d files] ", status.Directories, status.Files)
	room := width - len([]rune(counts))
	item := status.CurrentItem
	if room <= 0 {
		return fit(counts, width)
	}
	if r := []rune(item); len(r) > room {
		// keep the tail of the path, it is the part that changes
		item = "…" + string(r[len(r)-room+1:])
	}
	return counts + item
}

// fit pads or truncates s to exactly width runes so that a shorter line fully
// overwrites a longer one
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok && IsTerminal(w) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width - 1
		}
	}
	return defaultWidth
}
