package song

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// Overrides replaces derived attributes after parsing. Nil pointers and a nil Tags
// slice leave the parsed value untouched; a non-nil empty Tags clears the tags.
type Overrides struct {
	Title      *string
	Artist     *string
	TitleSort  *string
	ArtistSort *string
	Filename   *string
	Tags       []string
}

// merge layers o on top of base; o wins where it sets a value.
func (o Overrides) merge(base Overrides) Overrides {
	out := base
	if o.Title != nil {
		out.Title = o.Title
	}
	if o.Artist != nil {
		out.Artist = o.Artist
	}
	if o.TitleSort != nil {
		out.TitleSort = o.TitleSort
	}
	if o.ArtistSort != nil {
		out.ArtistSort = o.ArtistSort
	}
	if o.Filename != nil {
		out.Filename = o.Filename
	}
	if o.Tags != nil {
		out.Tags = make([]string, len(o.Tags))
		copy(out.Tags, o.Tags)
	}
	return out
}

// frontMatter is the metadata block accepted at the top of ukedown markup.
type frontMatter struct {
	Title      string                 `yaml:"title" toml:"title"`
	Artist     string                 `yaml:"artist" toml:"artist"`
	TitleSort  string                 `yaml:"title_sort" toml:"title_sort"`
	ArtistSort string                 `yaml:"artist_sort" toml:"artist_sort"`
	Filename   string                 `yaml:"filename" toml:"filename"`
	Tags       []string               `yaml:"tags" toml:"tags"`
	Extra      map[string]interface{} `yaml:",inline" toml:"-"`
}

func (fm frontMatter) overrides() Overrides {
	var o Overrides
	if fm.Title != "" {
		o.Title = stringPtr(fm.Title)
	}
	if fm.Artist != "" {
		o.Artist = stringPtr(fm.Artist)
	}
	if fm.TitleSort != "" {
		o.TitleSort = stringPtr(fm.TitleSort)
	}
	if fm.ArtistSort != "" {
		o.ArtistSort = stringPtr(fm.ArtistSort)
	}
	if fm.Filename != "" {
		o.Filename = stringPtr(fm.Filename)
	}
	if len(fm.Tags) > 0 {
		o.Tags = append([]string(nil), fm.Tags...)
	}
	return o
}

// unknownKeys lists front matter keys that are not overridable, sorted.
func (fm frontMatter) unknownKeys() []string {
	keys := make([]string, 0, len(fm.Extra))
	for k := range fm.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// splitFrontMatter separates an optional front matter block from the markup body.
// Markup without front matter is returned unchanged.
func splitFrontMatter(markup string) (frontMatter, []byte, error) {
	var fm frontMatter
	if !hasFrontMatter(markup) {
		return fm, []byte(markup), nil
	}
	body, err := frontmatter.Parse(bytes.NewReader([]byte(markup)), &fm)
	if err != nil {
		return frontMatter{}, nil, fmt.Errorf("parse front matter: %w", err)
	}
	return fm, body, nil
}

func hasFrontMatter(markup string) bool {
	first, _, found := strings.Cut(markup, "\n")
	if !found {
		return false
	}
	first = strings.TrimSuffix(first, "\r")
	return first == "---" || first == "+++"
}

func stringPtr(s string) *string { return &s }
