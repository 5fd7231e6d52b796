// Package source loads songsheet markup from disk. Formats are chosen by filename
// extension; every failure is reported as a *ReadError so callers can tell a file
// that could not be read apart from markup that could not be parsed.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// Format normalizes the raw bytes of one kind of source file into markup text.
type Format interface {
	CanLoad(filename string) bool
	Normalize(content []byte) (string, error)
}

var registry []Format

// Register adds a format to the registry. Earlier registrations win.
func Register(f Format) {
	registry = append(registry, f)
}

// ErrInvalidEncoding indicates the file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid utf-8 content")

// ReadError reports a source file that could not be opened, read or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e == nil {
		return "read error"
	}
	return fmt.Sprintf("unable to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// File is the decoded content of a source file.
type File struct {
	Path   string
	Markup string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadFile reads path and returns its markup using the first format that accepts
// the filename, falling back to the raw text.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, &ReadError{Path: path, Err: ErrInvalidEncoding}
	}

	markup := string(data)
	for _, f := range registry {
		if f.CanLoad(path) {
			markup, err = f.Normalize(data)
			if err != nil {
				return nil, &ReadError{Path: path, Err: err}
			}
			break
		}
	}
	return &File{Path: path, Markup: markup}, nil
}

func init() {
	Register(ukedownFiles)
	Register(textFiles)
}
