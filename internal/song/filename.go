package song

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// filenameSeparator joins the title and artist parts of a derived filename.
const filenameSeparator = "_-_"

// deriveFilename builds the filename used when none was supplied and the song was
// not loaded from disk: slug(title) + "_-_" + slug(artist), lowercased.
func deriveFilename(title string, artist *string) string {
	name := slugPart(title)
	if artist != nil && strings.TrimSpace(*artist) != "" {
		name += filenameSeparator + slugPart(*artist)
	}
	return name
}

func slugPart(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.Join(strings.Fields(value), "_"))
	}
	return strings.ToLower(normalized)
}
