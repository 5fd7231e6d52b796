package ukedown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	// ExtensionNL2BR renders bare newlines inside paragraphs as <br> tags.
	ExtensionNL2BR = "nl2br"
	// ExtensionUDN enables the [Chord] annotation syntax.
	ExtensionUDN = "udn"

	// DefaultChordClass is the class attribute placed on chord spans.
	DefaultChordClass = "chord"
)

// Config controls renderer-wide behaviour. Extensions are chosen per call.
type Config struct {
	// ChordClass is the class emitted on chord spans (defaults to "chord").
	ChordClass string
	// XHTML emits self-closing void elements such as <br />.
	XHTML bool
	// Unsafe passes raw HTML in the markup through to the output.
	Unsafe bool
}

// Renderer turns ukedown markup into HTML using goldmark. It holds no mutable state,
// so one instance can serve any number of goroutines.
type Renderer struct {
	cfg Config
}

// New constructs a Renderer.
func New(cfg Config) *Renderer {
	if strings.TrimSpace(cfg.ChordClass) == "" {
		cfg.ChordClass = DefaultChordClass
	}
	return &Renderer{cfg: cfg}
}

// ChordClass reports the class this renderer places on chord spans.
func (r *Renderer) ChordClass() string { return r.cfg.ChordClass }

// Render converts markup to HTML with the named extensions enabled. Unknown
// extension names are ignored; duplicates are collapsed.
func (r *Renderer) Render(markup []byte, extensions []string) ([]byte, error) {
	engine := r.engine(extensions)
	var buf bytes.Buffer
	if err := engine.Convert(markup, &buf); err != nil {
		return nil, fmt.Errorf("ukedown render: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) engine(extensions []string) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if r.cfg.XHTML {
		rendererOptions = append(rendererOptions, html.WithXHTML())
	}
	if r.cfg.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := r.collectExtensions(extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

// hardWraps adapts goldmark's hard-wrap renderer option to the extension interface so
// nl2br can be toggled by name like everything else.
type hardWraps struct{}

func (hardWraps) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(html.WithHardWraps())
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// KnownExtension reports whether name is an extension the renderer understands.
func KnownExtension(name string) bool {
	key := normalizeName(name)
	if key == ExtensionNL2BR || key == ExtensionUDN {
		return true
	}
	_, ok := extensionRegistry[key]
	return ok
}

// KnownExtensions lists every accepted extension name.
func KnownExtensions() []string {
	names := []string{ExtensionNL2BR, ExtensionUDN}
	for name := range extensionRegistry {
		names = append(names, name)
	}
	return names
}

func (r *Renderer) collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := normalizeName(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		var ext goldmark.Extender
		switch key {
		case ExtensionNL2BR:
			ext = hardWraps{}
		case ExtensionUDN:
			ext = NewChordExtension(r.cfg.ChordClass)
		default:
			registered, ok := extensionRegistry[key]
			if !ok {
				continue
			}
			ext = registered
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
