package output

import (
	"io"
)

// Tree glyphs. Every connector is followed directly by the entry name, and
// every indent is as wide as a connector plus one column.
const (
	BranchMid  = "├─"
	BranchLast = "└─"
	IndentMid  = "│  "
	IndentLast = "   "

	// DirMarker precedes directory names
	DirMarker = "[DIR] "
)

// Branch returns the connector for an entry, the terminal one when last is set
func Branch(last bool) string {
	if last {
		return BranchLast
	}
	return BranchMid
}

// ChildPrefix returns the prefix used for the children of an entry drawn with
// prefix. Children of a last sibling get blank padding instead of a bar.
func ChildPrefix(prefix string, last bool) string {
	if last {
		return prefix + IndentLast
	}
	return prefix + IndentMid
}

// DirLine formats a tree line for a directory, newline included
func DirLine(prefix, name string, last bool) string {
	return prefix + Branch(last) + DirMarker + name + "\n"
}

// FileLine formats a tree line for a file, newline included
func FileLine(prefix, name string, last bool) string {
	return prefix + Branch(last) + name + "\n"
}

// WriteDirLine writes DirLine to w
func WriteDirLine(w io.Writer, prefix, name string, last bool) error {
	_, err := io.WriteString(w, DirLine(prefix, name, last))
	return err
}

// WriteFileLine writes FileLine to w
func WriteFileLine(w io.Writer, prefix, name string, last bool) error {
	_, err := io.WriteString(w, FileLine(prefix, name, last))
	return err
}
