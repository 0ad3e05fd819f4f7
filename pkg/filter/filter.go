/*
Package filter decides which directory entries are left out of a Tree++ run.

Rules are static and compiled in. A directory is skipped when its name starts
with one of the configured prefixes or equals one of the configured directory
names. A file is skipped when its name equals one of the configured file names
or when its extension matches one of the configured extensions.

Basic usage:

	cfg := filter.Default()
	if filter.ShouldIgnore(filter.Entry{Path: p, Kind: filter.KindDir}, cfg) {
		// skip p and everything beneath it
	}
*/
package filter

import (
	"path/filepath"
	"strings"
)

// Kind represents the type of a directory entry
type Kind int

const (
	// KindFile is anything that is not a directory
	KindFile Kind = iota
	// KindDir is a directory
	KindDir
)

// Entry is a single directory entry under evaluation
type Entry struct {
	Path string
	Kind Kind
}

// Name returns the last element of the entry path
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Config holds the ignore rules. It is treated as immutable once built.
type Config struct {
	// Extensions are matched against the substring from the last '.' to the
	// end of a file name, dot included
	Extensions []string

	// DirPrefixes are matched against the start of a directory name
	DirPrefixes []string

	// DirNames are matched exactly against a directory name
	DirNames []string

	// FileNames are matched exactly against a file name
	FileNames []string
}

// Default returns the compiled-in ignore rules
func Default() Config {
	return Config{
		Extensions: []string{
			".o", ".obj", ".a", ".lib", ".so", ".dll", ".dylib", ".exe",
			".pdb", ".ilk", ".exp", ".class", ".pyc", ".gch", ".pch",
		},
		DirPrefixes: []string{
			"CMakeFiles",
			"cmake-build-",
		},
		DirNames: []string{
			".git", ".svn", ".hg", ".idea", ".vscode", ".vs",
			"build", "out", "node_modules", "__pycache__",
		},
		FileNames: []string{
			".DS_Store", "Thumbs.db", "desktop.ini", "CMakeCache.txt",
		},
	}
}

// ShouldIgnore reports whether the entry is excluded by cfg
func ShouldIgnore(entry Entry, cfg Config) bool {
	name := entry.Name()

	if entry.Kind == KindDir {
		for _, prefix := range cfg.DirPrefixes {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return contains(cfg.DirNames, name)
	}

	if contains(cfg.FileNames, name) {
		return true
	}
	return contains(cfg.Extensions, Extension(name))
}

// Extension returns the substring of name from its last '.' to the end, or ""
// when name has no dot
func Extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
