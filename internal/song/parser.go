package song

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KaramelBytes/songbook-cli/internal/htmldoc"
	"github.com/KaramelBytes/songbook-cli/internal/source"
	"github.com/KaramelBytes/songbook-cli/internal/ukedown"
)

// MarkupRenderer converts markup to HTML with the named extensions enabled.
type MarkupRenderer interface {
	Render(markup []byte, extensions []string) ([]byte, error)
}

// requiredExtensions are always passed to the renderer: bare newlines become <br>
// and [Chord] annotations become chord spans.
var requiredExtensions = []string{ukedown.ExtensionNL2BR, ukedown.ExtensionUDN}

// Attributes is the result of parsing markup.
type Attributes struct {
	Title string
	// Artist is nil when the header has no '-' separator.
	Artist   *string
	Chords   []string
	Body     string
	Warnings []string

	frontMatter frontMatter
}

// Parser extracts song attributes from ukedown markup. It keeps no per-parse state
// and is safe for concurrent use when its renderer is.
type Parser struct {
	renderer   MarkupRenderer
	chordClass string
	extensions []string
	strict     bool
	log        zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithChordClass sets the class that marks chord spans. It must match the class the
// renderer emits.
func WithChordClass(class string) Option {
	return func(p *Parser) {
		if strings.TrimSpace(class) != "" {
			p.chordClass = class
		}
	}
}

// WithExtensions enables renderer extensions in addition to the required ones.
func WithExtensions(names ...string) Option {
	return func(p *Parser) {
		p.extensions = append(p.extensions, names...)
	}
}

// WithStrictHeader makes more than one level-1 header a parse error instead of a
// warning.
func WithStrictHeader(strict bool) Option {
	return func(p *Parser) { p.strict = strict }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// NewParser returns a Parser rendering through r. When r reports its chord class,
// that class is used unless WithChordClass overrides it.
func NewParser(r MarkupRenderer, opts ...Option) *Parser {
	p := &Parser{
		renderer:   r,
		chordClass: ukedown.DefaultChordClass,
		extensions: append([]string(nil), requiredExtensions...),
		log:        zerolog.Nop(),
	}
	if cr, ok := r.(interface{ ChordClass() string }); ok && cr.ChordClass() != "" {
		p.chordClass = cr.ChordClass()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse renders markup and extracts the title, artist, chords and body.
//
// It fails with ErrMalformedInput when the rendered markup has no level-1 header or
// the header yields an empty title, and with ErrNoMarkup when markup is blank. In
// strict mode a second level-1 header fails with ErrAmbiguousHeader.
func (p *Parser) Parse(markup string) (*Attributes, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, ErrNoMarkup
	}
	fm, content, err := splitFrontMatter(markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	rendered, err := p.renderer.Render(content, p.extensions)
	if err != nil {
		return nil, fmt.Errorf("render markup: %w", err)
	}
	doc, err := htmldoc.Parse(rendered)
	if err != nil {
		return nil, err
	}

	attrs := &Attributes{frontMatter: fm}

	headers := doc.FindAll(htmldoc.Query{Tag: "h1"})
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no level-1 header found", ErrMalformedInput)
	}
	if len(headers) > 1 {
		if p.strict {
			return nil, fmt.Errorf("%w: found %d level-1 headers", ErrAmbiguousHeader, len(headers))
		}
		msg := fmt.Sprintf("%v: found %d level-1 headers, using the first", ErrAmbiguousHeader, len(headers))
		attrs.Warnings = append(attrs.Warnings, msg)
		p.log.Warn().Int("headers", len(headers)).Msg("multiple level-1 headers, using the first")
	}

	hdr := headers[0].Extract()
	attrs.Title, attrs.Artist = splitHeader(hdr.Text())
	hdr.Decompose()
	if attrs.Title == "" {
		return nil, fmt.Errorf("%w: header has an empty title", ErrMalformedInput)
	}

	chords := newChordList()
	spans := doc.FindAll(htmldoc.Query{Tag: "span", Attrs: map[string]string{"class": p.chordClass}})
	for _, span := range spans {
		if name, ok := chordName(span.Text()); ok {
			chords.add(name)
		}
	}
	attrs.Chords = chords.list()

	attrs.Body, err = doc.Body().InnerHTML()
	if err != nil {
		return nil, fmt.Errorf("serialize body: %w", err)
	}

	p.log.Debug().
		Str("title", attrs.Title).
		Strs("chords", attrs.Chords).
		Msg("parsed song")
	return attrs, nil
}

// FromMarkup parses markup into a new Song, applying front matter and then ov.
func (p *Parser) FromMarkup(markup string, ov Overrides) (*Song, error) {
	attrs, err := p.Parse(markup)
	if err != nil {
		return nil, err
	}
	return p.build(markup, "", attrs, ov), nil
}

// FromFile loads path and parses it into a new Song whose filename defaults to path.
// A file that cannot be read is reported as a *source.ReadError; no Song is built.
func (p *Parser) FromFile(path string, ov Overrides) (*Song, error) {
	f, err := source.LoadFile(path)
	if err != nil {
		var rerr *source.ReadError
		if errors.As(err, &rerr) {
			p.log.Error().Err(rerr.Err).Str("path", rerr.Path).Msg("unable to open input file")
		}
		return nil, err
	}
	attrs, err := p.Parse(f.Markup)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p.build(f.Markup, f.Path, attrs, ov), nil
}

func (p *Parser) build(markup, path string, attrs *Attributes, ov Overrides) *Song {
	s := &Song{
		id:       uuid.NewString(),
		markup:   markup,
		filename: path,
		title:    attrs.Title,
		artist:   attrs.Artist,
		chords:   append([]string(nil), attrs.Chords...),
		body:     attrs.Body,
		tags:     make(map[string]struct{}),
		warnings: append([]string(nil), attrs.Warnings...),
	}

	if unknown := attrs.frontMatter.unknownKeys(); len(unknown) > 0 {
		p.log.Debug().Strs("keys", unknown).Msg("ignoring unknown front matter keys")
	}

	eff := ov.merge(attrs.frontMatter.overrides())
	if eff.Title != nil {
		s.title = *eff.Title
	}
	if eff.Artist != nil {
		s.artist = stringPtr(*eff.Artist)
	}
	if eff.TitleSort != nil {
		s.titleSort = stringPtr(*eff.TitleSort)
	}
	if eff.ArtistSort != nil {
		s.artistSort = stringPtr(*eff.ArtistSort)
	}
	if eff.Filename != nil {
		s.filename = *eff.Filename
	}
	if eff.Tags != nil {
		s.SetTags(eff.Tags)
	}
	if s.filename == "" {
		s.filename = deriveFilename(s.title, s.artist)
	}
	return s
}
