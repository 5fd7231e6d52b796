package ukedown

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindChord is the goldmark node kind for an inline chord annotation.
var KindChord = ast.NewNodeKind("Chord")

// Chord is an inline chord annotation. Literal holds everything between the brackets,
// which is the chord name optionally followed by fingering or diagram text.
type Chord struct {
	ast.BaseInline
	Literal []byte
}

// Kind implements ast.Node.
func (n *Chord) Kind() ast.NodeKind { return KindChord }

// Dump implements ast.Node.
func (n *Chord) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Literal": string(n.Literal)}, nil)
}

// chordNamePattern matches the leading token of a chord annotation: a root note with
// optional accidental, quality, extensions and slash bass, or "no chord". Words that
// merely start with A-G (Chorus, Bridge, Fade) do not match.
var chordNamePattern = regexp.MustCompile(
	`^(?:[A-G](?:#|b|♯|♭)?` +
		`(?:maj|min|dim|aug|sus|add|m|M|\+|°|ø)?[0-9]*` +
		`(?:(?:maj|sus|add|no|#|b|♯|♭|\+|-)[0-9]+)*` +
		`(?:/[A-G](?:#|b|♯|♭)?)?` +
		`|N\.?C\.?)$`)

// IsChordName reports whether token looks like a chord name.
func IsChordName(token string) bool {
	return chordNamePattern.MatchString(token)
}

// chordPriority sits ahead of goldmark's link parser (200) so chords win the '[' trigger.
const chordPriority = 199

type chordParser struct{}

func (chordParser) Trigger() []byte { return []byte{'['} }

func (chordParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[0] != '[' {
		return nil
	}
	end := bytes.IndexByte(line, ']')
	if end < 2 {
		return nil
	}
	inner := line[1:end]
	if bytes.IndexByte(inner, '[') >= 0 {
		return nil
	}
	// [text](url) belongs to the link parser
	if end+1 < len(line) && line[end+1] == '(' {
		return nil
	}
	fields := bytes.Fields(inner)
	if len(fields) == 0 || !IsChordName(string(fields[0])) {
		return nil
	}
	// [C][G] is two chords unless the second label names a link reference
	if end+1 < len(line) && line[end+1] == '[' && isReferenceLabel(inner, line[end+1:], pc) {
		return nil
	}
	block.Advance(end + 1)
	return &Chord{Literal: append([]byte(nil), bytes.TrimSpace(inner)...)}
}

// isReferenceLabel reports whether rest opens a [ref] label that the link parser would
// resolve to a defined link reference. A collapsed [] label refers back to first.
func isReferenceLabel(first, rest []byte, pc parser.Context) bool {
	end := bytes.IndexByte(rest, ']')
	if end < 0 {
		return false
	}
	label := rest[1:end]
	if len(bytes.TrimSpace(label)) == 0 {
		label = first
	}
	_, ok := pc.Reference(util.ToLinkReference(label))
	return ok
}

type chordRenderer struct {
	class string
}

func (r *chordRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindChord, r.renderChord)
}

func (r *chordRenderer) renderChord(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Chord)
	_, _ = w.WriteString(`<span class="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.class)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Literal))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}

// chordExtension wires the chord syntax into a goldmark instance.
type chordExtension struct {
	class string
}

// NewChordExtension returns a goldmark extension that renders [Chord] annotations as
// spans carrying the given class.
func NewChordExtension(class string) goldmark.Extender {
	if class == "" {
		class = DefaultChordClass
	}
	return &chordExtension{class: class}
}

func (e *chordExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(chordParser{}, chordPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&chordRenderer{class: e.class}, 500),
	))
}
