package song

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput indicates the rendered markup has no usable level-1 header.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoMarkup indicates there was no markup to parse.
	ErrNoMarkup = fmt.Errorf("%w: no markup", ErrMalformedInput)

	// ErrAmbiguousHeader indicates more than one level-1 header. It is fatal only in
	// strict mode; otherwise it is reported as a warning.
	ErrAmbiguousHeader = errors.New("ambiguous header")
)
