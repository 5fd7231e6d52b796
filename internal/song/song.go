package song

import (
	"sort"
)

// Song is a single songsheet: its source markup plus everything parsed out of it.
//
// Markup, filename, title, artist, sort keys and tags are settable after
// construction (last write wins). Chords and body are derived from the markup at
// construction time and are read-only; setting new markup does not re-parse it.
type Song struct {
	id         string
	markup     string
	filename   string
	title      string
	artist     *string
	titleSort  *string
	artistSort *string
	chords     []string
	body       string
	tags       map[string]struct{}
	warnings   []string
}

// ID is a random identifier assigned when the song is constructed.
func (s *Song) ID() string { return s.id }

// Markup returns the raw source text.
func (s *Song) Markup() string { return s.markup }

// SetMarkup replaces the stored source text without re-parsing.
func (s *Song) SetMarkup(markup string) { s.markup = markup }

func (s *Song) Filename() string { return s.filename }

func (s *Song) SetFilename(name string) { s.filename = name }

func (s *Song) Title() string { return s.title }

func (s *Song) SetTitle(title string) { s.title = title }

// Artist returns the artist and whether one is set.
func (s *Song) Artist() (string, bool) {
	if s.artist == nil {
		return "", false
	}
	return *s.artist, true
}

func (s *Song) SetArtist(artist string) { s.artist = stringPtr(artist) }

// ClearArtist marks the song as having no artist.
func (s *Song) ClearArtist() { s.artist = nil }

// TitleSort returns the explicitly set title sort key, or one derived from the
// current title.
func (s *Song) TitleSort() string {
	if s.titleSort != nil {
		return *s.titleSort
	}
	return sortKey(s.title)
}

func (s *Song) SetTitleSort(key string) { s.titleSort = stringPtr(key) }

// ArtistSort returns the explicitly set artist sort key, or one derived from the
// current artist. It reports false when neither exists.
func (s *Song) ArtistSort() (string, bool) {
	if s.artistSort != nil {
		return *s.artistSort, true
	}
	if s.artist == nil {
		return "", false
	}
	return sortKey(*s.artist), true
}

func (s *Song) SetArtistSort(key string) { s.artistSort = stringPtr(key) }

// Chords returns a copy of the chord names in order of first appearance.
func (s *Song) Chords() []string { return append([]string(nil), s.chords...) }

// Body returns the rendered HTML body with the header removed.
func (s *Song) Body() string { return s.body }

// Warnings returns non-fatal diagnostics collected while parsing.
func (s *Song) Warnings() []string { return append([]string(nil), s.warnings...) }

// Tags returns a sorted copy of the tag set.
func (s *Song) Tags() []string {
	out := make([]string, 0, len(s.tags))
	for t := range s.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HasTag reports whether tag is set.
func (s *Song) HasTag(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

// Tag adds tag; adding an existing tag is a no-op.
func (s *Song) Tag(tag string) {
	if s.tags == nil {
		s.tags = make(map[string]struct{})
	}
	s.tags[tag] = struct{}{}
}

// Untag removes tag if present.
func (s *Song) Untag(tag string) {
	delete(s.tags, tag)
}

// ClearTags removes all tags.
func (s *Song) ClearTags() {
	s.tags = make(map[string]struct{})
}

// SetTags replaces the tag set; duplicates collapse.
func (s *Song) SetTags(tags []string) {
	s.ClearTags()
	for _, t := range tags {
		s.Tag(t)
	}
}

// Record is a serializable snapshot of a Song.
type Record struct {
	ID         string   `json:"id" yaml:"id"`
	Filename   string   `json:"filename" yaml:"filename"`
	Title      string   `json:"title" yaml:"title"`
	TitleSort  string   `json:"title_sort" yaml:"title_sort"`
	Artist     *string  `json:"artist" yaml:"artist"`
	ArtistSort *string  `json:"artist_sort,omitempty" yaml:"artist_sort,omitempty"`
	Chords     []string `json:"chords" yaml:"chords"`
	Tags       []string `json:"tags" yaml:"tags"`
	Body       string   `json:"body" yaml:"body"`
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Record returns a snapshot of the song's current attributes.
func (s *Song) Record() Record {
	r := Record{
		ID:        s.id,
		Filename:  s.filename,
		Title:     s.title,
		TitleSort: s.TitleSort(),
		Chords:    s.Chords(),
		Tags:      s.Tags(),
		Body:      s.body,
		Warnings:  s.Warnings(),
	}
	if artist, ok := s.Artist(); ok {
		r.Artist = stringPtr(artist)
	}
	if key, ok := s.ArtistSort(); ok {
		r.ArtistSort = stringPtr(key)
	}
	return r
}
