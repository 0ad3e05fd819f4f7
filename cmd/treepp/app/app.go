/*
Package app wires the treepp components together for a single run: it takes
the run lock, creates the report, walks the tree, appends the text content and
prints a summary.

Usage:

	a := app.New(cfg)
	if err := a.Run(".", config.OutputFileName); err != nil {
	    log.Fatal(err)
	}
*/
package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/sonemaro/treepp/internal/config"
	"github.com/sonemaro/treepp/internal/version"
	"github.com/sonemaro/treepp/pkg/filter"
	"github.com/sonemaro/treepp/pkg/logger"
	"github.com/sonemaro/treepp/pkg/output"
	"github.com/sonemaro/treepp/pkg/progress"
	"github.com/sonemaro/treepp/pkg/report"
	"github.com/sonemaro/treepp/pkg/walker"
	"github.com/spf13/afero"
)

// App represents the main application container
type App struct {
	config *config.Config
	log    logger.Logger
	fs     afero.Fs
	stderr io.Writer

	lockDir string
	colors  bool

	walker   *walker.Walker
	reporter *report.Reporter
	progress progress.Progress
}

// Option customizes an App
type Option func(*App)

// WithLogger replaces the logger built from the configuration
func WithLogger(log logger.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithStderr sets where progress and the summary are written
func WithStderr(w io.Writer) Option {
	return func(a *App) {
		a.stderr = w
	}
}

// WithLockDir sets the directory holding run lock files
func WithLockDir(dir string) Option {
	return func(a *App) {
		a.lockDir = dir
	}
}

// New creates a new application instance
func New(cfg *config.Config, opts ...Option) *App {
	a := &App{
		config:  cfg,
		fs:      afero.NewOsFs(),
		stderr:  os.Stderr,
		lockDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.initLogger()
	}
	a.initComponents()

	a.log.WithFields(logger.Fields{
		"verbose": cfg.Verbose,
		"colors":  a.colors,
	}).Debug("Application initialized")

	return a
}

// Logger returns the application logger
func (a *App) Logger() logger.Logger {
	return a.log
}

// Run writes the report for root to outputPath
func (a *App) Run(root, outputPath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	a.log.WithFields(logger.Fields{
		"path":   root,
		"output": outputPath,
	}).Info("Starting run")

	if err := a.validatePath(root); err != nil {
		return err
	}

	release, err := a.acquireLock(outputPath)
	if err != nil {
		return err
	}
	defer release()

	f, err := a.fs.Create(outputPath)
	if err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"path":  outputPath,
		}).Error("Failed to create report file")
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	summary, err := a.writeReport(f, root, outputPath)
	if err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}

	if info, err := a.fs.Stat(outputPath); err == nil {
		summary.ReportBytes = info.Size()
	}
	summary.Duration = time.Since(start)

	a.log.WithFields(logger.Fields{
		"directories": summary.Directories,
		"files":       summary.Files,
		"reported":    summary.Reported,
		"errors":      summary.Errors,
		"bytes":       summary.ReportBytes,
		"duration":    summary.Duration,
	}).Info("Run completed")

	if !a.config.Quiet {
		if err := output.PrintSummary(a.stderr, summary, a.colors); err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Warn("Failed to print summary")
		}
	}

	return nil
}

// writeReport fills f with the banner, the tree and the text content
func (a *App) writeReport(f io.Writer, root, outputPath string) (output.Summary, error) {
	w := bufio.NewWriter(f)

	if err := output.WriteBanner(w, version.Version); err != nil {
		return output.Summary{}, fmt.Errorf("writing banner: %w", err)
	}
	if err := output.WriteTreeSection(w); err != nil {
		return output.Summary{}, fmt.Errorf("writing tree header: %w", err)
	}

	a.progress.Start("Walking " + root)
	result, err := a.walker.Run(w, root)
	a.progress.Complete()
	if err != nil {
		return output.Summary{}, fmt.Errorf("walking %s: %w", root, err)
	}

	if err := output.WriteContentSection(w); err != nil {
		return output.Summary{}, fmt.Errorf("writing content header: %w", err)
	}

	excl, err := report.DefaultExclusions(outputPath, a.log)
	if err != nil {
		return output.Summary{}, fmt.Errorf("building exclusions: %w", err)
	}

	stats, err := a.reporter.Report(w, result.TextFiles, excl)
	if err != nil {
		return output.Summary{}, err
	}

	if err := w.Flush(); err != nil {
		return output.Summary{}, fmt.Errorf("flushing report: %w", err)
	}

	return output.Summary{
		Root:        root,
		OutputPath:  outputPath,
		Directories: result.Stats.Directories,
		Files:       result.Stats.Files,
		TextFiles:   result.Stats.TextFiles,
		Ignored:     result.Stats.Ignored,
		Errors:      len(result.Errors),
		Reported:    stats.Reported,
		Excluded:    stats.Excluded,
		Skipped:     stats.Skipped,
	}, nil
}

// initLogger initializes the application logger
func (a *App) initLogger() {
	format, err := logger.ParseFormat(a.config.LogFormat)
	if err != nil {
		format = logger.FormatJSON
	}

	a.log = logger.NewLogger(logger.Config{
		Verbosity: a.config.Verbose,
		Format:    format,
		Output:    a.stderr,
	})
}

// initComponents initializes all application components
func (a *App) initComponents() {
	terminal := progress.IsTerminal(a.stderr)
	a.colors = !a.config.NoColor && terminal

	a.progress = progress.New(progress.Config{
		// log lines would tear the status line apart
		Enabled:     !a.config.NoProgress && terminal && a.config.Verbose == 0,
		RefreshRate: 50 * time.Millisecond,
		Output:      a.stderr,
	}, a.log)

	a.walker = walker.New(a.fs, filter.Default(), a.log, walker.WithObserver(func(dir string, stats walker.Stats) {
		a.progress.Update(progress.Status{
			CurrentItem: dir,
			Directories: stats.Directories,
			Files:       stats.Files,
		})
	}))

	a.reporter = report.New(a.fs, a.log)
}

// validatePath checks that root is an existing directory
func (a *App) validatePath(root string) error {
	info, err := a.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			a.log.WithFields(logger.Fields{
				"path": root,
			}).Error("Path does not exist")
			return fmt.Errorf("path does not exist: %s", root)
		}
		return fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		a.log.WithFields(logger.Fields{
			"path": root,
		}).Error("Path is not a directory")
		return fmt.Errorf("path is not a directory: %s", root)
	}

	return nil
}
