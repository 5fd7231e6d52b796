package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/songbook-cli/internal/song"
)

var chordsCmd = &cobra.Command{
	Use:   "chords <file>",
	Short: "List the chords used in a songsheet, in order of first appearance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSongParser().FromFile(args[0], song.Overrides{})
		if err != nil {
			return err
		}
		chords := s.Chords()
		if len(chords) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no chords)")
			return nil
		}
		for _, c := range chords {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chordsCmd)
}
