package walker

import "fmt"

// Operations recorded in a PathError
const (
	OpReadDir = "read directory"
	OpWrite   = "write tree line"
)

// PathError records a failed operation on a single path during a walk
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
