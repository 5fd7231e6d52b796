package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/songbook-cli/internal/song"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Check that songsheets parse",
	Long: `check parses each file and reports its title, artist and chord count.
It fails when a file cannot be read or has no level-1 "Title - Artist" header.
With --strict, a second level-1 header is also a failure.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newSongParser()
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			s, err := p.FromFile(path, song.Overrides{})
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				failed++
				continue
			}
			header := s.Title()
			if artist, ok := s.Artist(); ok {
				header += " - " + artist
			}
			fmt.Fprintf(out, "✓ %s: %s (%d chords)\n", path, header, len(s.Chords()))
			for _, w := range s.Warnings() {
				fmt.Fprintf(out, "  ⚠ %s\n", w)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d songsheets failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
