package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/songbook-cli/internal/song"
	"github.com/KaramelBytes/songbook-cli/internal/utils"
)

var bodyOut string

var bodyCmd = &cobra.Command{
	Use:   "body <file>",
	Short: "Print the rendered HTML body of a songsheet (header removed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSongParser().FromFile(args[0], song.Overrides{})
		if err != nil {
			return err
		}
		if bodyOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), s.Body())
			return nil
		}
		if err := utils.SafeWriteFile(bodyOut, []byte(s.Body())); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Body written: %s\n", bodyOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.Flags().StringVarP(&bodyOut, "out", "o", "", "write the body to this file instead of stdout")
}
