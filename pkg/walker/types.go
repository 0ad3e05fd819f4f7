package walker

// Stats counts what a walk has seen so far
type Stats struct {
	// Directories is the number of directory lines written
	Directories int

	// Files is the number of file lines written
	Files int

	// TextFiles is the number of files classified as text
	TextFiles int

	// Ignored is the number of entries dropped by the filter
	Ignored int
}

// Result is the outcome of a complete walk
type Result struct {
	// TextFiles lists text files in the order they were written to the tree
	TextFiles []string

	Stats Stats

	// Errors holds the nonfatal failures, one per unreadable directory
	Errors []*PathError
}

// Observer is told about every directory as the walk enters it
type Observer func(dir string, stats Stats)

// Option customizes a Walker
type Option func(*Walker)

// WithObserver registers fn to be called on each directory entered
func WithObserver(fn Observer) Option {
	return func(w *Walker) {
		w.observer = fn
	}
}
