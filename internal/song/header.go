package song

import "strings"

// splitHeader splits "Title - Artist" on the first '-'. Without a separator the
// artist is nil, which is distinct from an empty artist.
func splitHeader(text string) (title string, artist *string) {
	left, right, found := strings.Cut(text, "-")
	if !found {
		return strings.TrimSpace(text), nil
	}
	a := strings.TrimSpace(right)
	return strings.TrimSpace(left), &a
}

var leadingArticles = []string{"the", "a", "an"}

// sortKey moves a leading article to the end: "The Beatles" sorts as "Beatles, The".
func sortKey(name string) string {
	name = strings.TrimSpace(name)
	first, rest, found := strings.Cut(name, " ")
	if !found {
		return name
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return name
	}
	for _, article := range leadingArticles {
		if strings.EqualFold(first, article) {
			return rest + ", " + first
		}
	}
	return name
}
