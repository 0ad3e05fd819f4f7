/*
Package output renders the pieces of a Tree++ report: the banner, the section
headers, tree lines and per-file headers. It also formats the run summary
printed on the console once the report is written.

A report looks like:

	===== Tree++ v1.0.0 =====
	===== DIRECTORY TREE =====
	├─[DIR] src
	│  └─main.cpp
	└─README

	===== TEXT CONTENT =====

	===== src/main.cpp =====
	int main() {}

	===== README =====
	...
*/
package output

import (
	"fmt"
	"io"
)

// AppName is the name shown in the report banner
const AppName = "Tree++"

const (
	// TreeSection opens the directory tree section
	TreeSection = "===== DIRECTORY TREE ====="

	// ContentSection opens the text content section
	ContentSection = "===== TEXT CONTENT ====="
)

// Header wraps title in the "===== title =====" frame used for every header
func Header(title string) string {
	return "===== " + title + " ====="
}

// WriteBanner writes the first line of a report. version is included so that
// reports stay reproducible for a given build.
func WriteBanner(w io.Writer, version string) error {
	title := AppName
	if version != "" {
		title += " " + version
	}
	_, err := fmt.Fprintln(w, Header(title))
	return err
}

// WriteTreeSection writes the directory tree section header
func WriteTreeSection(w io.Writer) error {
	_, err := fmt.Fprintln(w, TreeSection)
	return err
}

// WriteContentSection writes the text content section header, separated from
// the tree by an empty line
func WriteContentSection(w io.Writer) error {
	_, err := fmt.Fprint(w, "\n"+ContentSection+"\n")
	return err
}

// WriteFileHeader writes the header that precedes the content of path
func WriteFileHeader(w io.Writer, path string) error {
	_, err := fmt.Fprint(w, "\n"+Header(path)+"\n")
	return err
}
