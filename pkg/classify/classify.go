// Package classify tells text files from binary ones by sampling their first
// bytes.
//
// The check is a heuristic, not a content-type detector: only printable ASCII
// and common whitespace count as text, so UTF-8 encoded multi-byte text is
// reported as binary.
package classify

import (
	"errors"
	"io"

	"github.com/spf13/afero"
)

// SampleSize is the number of leading bytes inspected
const SampleSize = 1024

// IsText reports whether the file at path looks like text. Files that cannot
// be opened or read are reported as binary.
func IsText(fs afero.Fs, path string) bool {
	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, SampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}

	return IsTextBytes(buf[:n])
}

// IsTextBytes reports whether every byte of sample is printable ASCII or
// whitespace. An empty sample is text.
func IsTextBytes(sample []byte) bool {
	for _, b := range sample {
		if !isTextByte(b) {
			return false
		}
	}
	return true
}

func isTextByte(b byte) bool {
	switch b {
	case '\n', '\r', '\t':
		return true
	}
	return b >= 9 && b <= 126
}
