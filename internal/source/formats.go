package source

import (
	"path/filepath"
	"strings"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// extFormat accepts files by extension. Blank lines are always kept: runs of them are
// significant inside fenced blocks and between verses.
type extFormat struct {
	exts      map[string]struct{}
	unixLines bool
}

func newExtFormat(unixLines bool, exts ...string) extFormat {
	f := extFormat{exts: make(map[string]struct{}, len(exts)), unixLines: unixLines}
	for _, ext := range exts {
		f.exts[ext] = struct{}{}
	}
	return f
}

func (f extFormat) CanLoad(filename string) bool {
	_, ok := f.exts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

func (f extFormat) Normalize(content []byte) (string, error) {
	if !f.unixLines {
		return string(content), nil
	}
	return lineEndings.Replace(string(content)), nil
}

var (
	ukedownFiles = newExtFormat(true, ".udn", ".ukedown", ".md", ".markdown")
	// plain text is handed over untouched
	textFiles = newExtFormat(false, ".txt")
)
