package song

import "strings"

// chordList is an insertion-ordered set of chord names.
type chordList struct {
	names []string
	seen  map[string]struct{}
}

func newChordList() *chordList {
	return &chordList{seen: make(map[string]struct{})}
}

// add appends name unless it is already present.
func (c *chordList) add(name string) {
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = struct{}{}
	c.names = append(c.names, name)
}

func (c *chordList) list() []string {
	return append([]string(nil), c.names...)
}

// chordName returns the leading whitespace-delimited token of a chord span's text.
// Anything after it is fingering or diagram text.
func chordName(spanText string) (string, bool) {
	fields := strings.Fields(spanText)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}
