/*
Package walker renders a directory as a box-drawing tree and collects the
files that look like text along the way.

The walk is depth first. At every level directories come before files and
both groups are sorted by name. Entries rejected by the filter are left out
together with everything beneath them.

Basic usage:

	w := walker.New(afero.NewOsFs(), filter.Default(), log)
	result, err := w.Run(out, "/path/to/project")
	// result.TextFiles holds the text files in tree order
*/
package walker

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sonemaro/treepp/pkg/classify"
	"github.com/sonemaro/treepp/pkg/filter"
	"github.com/sonemaro/treepp/pkg/logger"
	"github.com/sonemaro/treepp/pkg/output"
	"github.com/spf13/afero"
)

// Walker writes tree lines for a directory hierarchy. A Walker is not safe for
// concurrent use.
type Walker struct {
	fs       afero.Fs
	filter   filter.Config
	log      logger.Logger
	observer Observer

	stats  Stats
	errors []*PathError
}

// New creates a Walker reading from fs and skipping entries rejected by cfg
func New(fs afero.Fs, cfg filter.Config, log logger.Logger, opts ...Option) *Walker {
	w := &Walker{
		fs:     fs,
		filter: cfg,
		log:    log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run walks root from a clean state and returns the collected text files
// together with statistics and nonfatal errors. root itself is not printed.
// An unreadable root or a failed write is returned as an error.
func (w *Walker) Run(out io.Writer, root string) (Result, error) {
	w.stats = Stats{}
	w.errors = nil

	w.log.WithFields(logger.Fields{
		"path": root,
	}).Info("Starting walk")

	var textFiles []string
	if err := w.Walk(out, root, "", &textFiles); err != nil {
		w.log.WithFields(logger.Fields{
			"error": err,
			"path":  root,
		}).Error("Walk failed")
		return Result{}, err
	}

	w.log.WithFields(logger.Fields{
		"directories": w.stats.Directories,
		"files":       w.stats.Files,
		"textFiles":   w.stats.TextFiles,
		"ignored":     w.stats.Ignored,
		"errors":      len(w.errors),
	}).Info("Walk completed")

	return Result{
		TextFiles: textFiles,
		Stats:     w.stats,
		Errors:    w.errors,
	}, nil
}

// Walk writes the tree lines for the children of dir, each preceded by prefix,
// and appends every text file it lists to acc.
//
// Failing to read dir itself is returned as a *PathError with Op OpReadDir.
// When that happens for a subdirectory the failure is recorded, the
// subdirectory keeps its line without children, and its siblings are walked
// as usual.
func (w *Walker) Walk(out io.Writer, dir, prefix string, acc *[]string) error {
	w.log.WithFields(logger.Fields{
		"path":   dir,
		"prefix": prefix,
	}).Debug("Walking directory")

	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return &PathError{Op: OpReadDir, Path: dir, Err: err}
	}

	if w.observer != nil {
		w.observer(dir, w.stats)
	}

	dirs, files := w.partition(dir, entries)

	for i, d := range dirs {
		last := i == len(dirs)-1 && len(files) == 0
		if err := output.WriteDirLine(out, prefix, d.Name(), last); err != nil {
			return &PathError{Op: OpWrite, Path: dir, Err: err}
		}
		w.stats.Directories++

		subdir := childPath(dir, d.Name())
		err := w.Walk(out, subdir, output.ChildPrefix(prefix, last), acc)
		if err == nil {
			continue
		}

		var pathErr *PathError
		if !errors.As(err, &pathErr) || pathErr.Op != OpReadDir || pathErr.Path != subdir {
			return err
		}

		w.log.WithFields(logger.Fields{
			"error": pathErr.Err,
			"path":  subdir,
		}).Warn("Skipping unreadable directory")
		w.errors = append(w.errors, pathErr)
	}

	for i, f := range files {
		last := i == len(files)-1
		if err := output.WriteFileLine(out, prefix, f.Name(), last); err != nil {
			return &PathError{Op: OpWrite, Path: dir, Err: err}
		}
		w.stats.Files++

		path := childPath(dir, f.Name())
		if classify.IsText(w.fs, path) {
			w.stats.TextFiles++
			*acc = append(*acc, path)
			w.log.WithFields(logger.Fields{
				"path": path,
			}).Trace("Classified as text")
		} else {
			w.log.WithFields(logger.Fields{
				"path": path,
			}).Trace("Classified as binary")
		}
	}

	return nil
}

// partition drops ignored entries and splits the rest into directories and
// everything else. Symlinks land with the files and are never descended into.
func (w *Walker) partition(dir string, entries []os.FileInfo) (dirs, files []os.FileInfo) {
	for _, entry := range entries {
		kind := filter.KindFile
		if entry.IsDir() {
			kind = filter.KindDir
		}

		path := childPath(dir, entry.Name())
		if filter.ShouldIgnore(filter.Entry{Path: path, Kind: kind}, w.filter) {
			w.stats.Ignored++
			w.log.WithFields(logger.Fields{
				"path": path,
			}).Debug("Ignoring path")
			continue
		}

		if kind == filter.KindDir {
			dirs = append(dirs, entry)
		} else {
			files = append(files, entry)
		}
	}

	sortByName(dirs)
	sortByName(files)
	return dirs, files
}

// childPath appends name to dir without cleaning dir, so a root of "." yields
// "./name" and the report shows paths exactly as they were reached.
func childPath(dir, name string) string {
	if dir == "" || os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

func sortByName(infos []os.FileInfo) {
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
}
