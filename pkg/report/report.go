/*
Package report appends the contents of collected text files to a Tree++
report, each under a header naming its path.

Files that are part of the run itself, the treepp binary and the report being
written, are never opened. Files that disappeared or became unreadable since
the walk are skipped without failing the run.
*/
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sonemaro/treepp/pkg/logger"
	"github.com/sonemaro/treepp/pkg/output"
	"github.com/spf13/afero"
)

// Exclusions identifies files that must not be copied into a report
type Exclusions struct {
	// Paths are absolute, cleaned paths
	Paths map[string]struct{}

	// Names are base names excluded wherever they appear
	Names map[string]struct{}
}

// NewExclusions returns an empty exclusion set
func NewExclusions() Exclusions {
	return Exclusions{
		Paths: make(map[string]struct{}),
		Names: make(map[string]struct{}),
	}
}

// AddPath excludes the file at path. Relative paths are resolved against the
// working directory.
func (e Exclusions) AddPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	e.Paths[abs] = struct{}{}
	return nil
}

// AddName excludes every file called name
func (e Exclusions) AddName(name string) {
	e.Names[name] = struct{}{}
}

// Excludes reports whether path is covered by the set
func (e Exclusions) Excludes(path string) bool {
	if _, ok := e.Names[filepath.Base(path)]; ok {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, ok := e.Paths[abs]
	return ok
}

// DefaultExclusions excludes the report at outputPath, by path and by name,
// and the running executable
func DefaultExclusions(outputPath string, log logger.Logger) (Exclusions, error) {
	excl := NewExclusions()
	if err := excl.AddPath(outputPath); err != nil {
		return Exclusions{}, err
	}
	excl.AddName(filepath.Base(outputPath))

	exe, err := os.Executable()
	if err != nil {
		log.WithFields(logger.Fields{
			"error": err,
		}).Debug("Cannot locate executable, it will not be excluded")
		return excl, nil
	}
	if err := excl.AddPath(exe); err != nil {
		return Exclusions{}, err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		if err := excl.AddPath(resolved); err != nil {
			return Exclusions{}, err
		}
	}

	return excl, nil
}

// Stats counts what a report run did with the paths it was given
type Stats struct {
	Reported int
	Excluded int
	Skipped  int
	Bytes    int64
}

// Reporter copies text files into a report
type Reporter struct {
	fs  afero.Fs
	log logger.Logger
}

// New creates a Reporter reading files from fs
func New(fs afero.Fs, log logger.Logger) *Reporter {
	return &Reporter{
		fs:  fs,
		log: log,
	}
}

// Report writes a header and the verbatim contents of every path to w, in
// order. Excluded paths are never opened. A file that cannot be opened is
// left out entirely; a read failure after opening leaves a partial entry.
// Only write errors are returned.
func (r *Reporter) Report(w io.Writer, paths []string, excl Exclusions) (Stats, error) {
	var stats Stats

	for _, path := range paths {
		if excl.Excludes(path) {
			stats.Excluded++
			r.log.WithFields(logger.Fields{
				"path": path,
			}).Debug("Excluding self-referencing file")
			continue
		}

		n, ok, err := r.copyFile(w, path)
		if err != nil {
			return stats, fmt.Errorf("writing content of %s: %w", path, err)
		}
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Reported++
		stats.Bytes += n
	}

	r.log.WithFields(logger.Fields{
		"reported": stats.Reported,
		"excluded": stats.Excluded,
		"skipped":  stats.Skipped,
		"bytes":    stats.Bytes,
	}).Info("Text content written")

	return stats, nil
}

// copyFile writes the entry for path. ok is false when the file could not be
// opened and nothing was written.
func (r *Reporter) copyFile(w io.Writer, path string) (n int64, ok bool, err error) {
	f, openErr := r.fs.Open(path)
	if openErr != nil {
		r.log.WithFields(logger.Fields{
			"error": openErr,
			"path":  path,
		}).Debug("Skipping file that cannot be opened")
		return 0, false, nil
	}
	defer f.Close()

	content, readErr := io.ReadAll(f)
	if readErr != nil {
		r.log.WithFields(logger.Fields{
			"error": readErr,
			"path":  path,
			"bytes": len(content),
		}).Warn("File only partially read")
	}

	if err := output.WriteFileHeader(w, path); err != nil {
		return 0, true, err
	}
	written, err := w.Write(content)
	if err != nil {
		return int64(written), true, err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return int64(written), true, err
	}

	r.log.WithFields(logger.Fields{
		"path":  path,
		"bytes": written,
	}).Trace("File copied into report")

	return int64(written), true, nil
}
