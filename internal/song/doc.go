// Package song turns ukedown songsheet markup into a Song record.
//
// # Parsing
//
// A Parser renders markup to HTML (newline-to-<br> and chord extensions enabled),
// then reads the rendered tree:
//
//   - the first level-1 heading is the "Title - Artist" header; it is removed from
//     the tree and split on its first '-'
//   - every chord span contributes its leading token to the chord list, first
//     appearance wins
//   - what is left under <body> becomes the song body
//
// # Construction
//
//	p := song.NewParser(ukedown.New(ukedown.Config{}))
//	s, err := p.FromFile("let_it_be.udn", song.Overrides{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(s.Title(), s.Chords())
//
// Values from front matter at the top of the markup, then explicit Overrides, replace
// the parsed title, artist, sort keys, filename and tags.
package song
