package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/KaramelBytes/songbook-cli/internal/config"
	"github.com/KaramelBytes/songbook-cli/internal/song"
	"github.com/KaramelBytes/songbook-cli/internal/utils"
)

var (
	showFormat   string
	showTitle    string
	showArtist   string
	showFilename string
	showTags     []string
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Parse a songsheet and print the song record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := currentConfig().OutputFormat
		if cmd.Flags().Changed("format") {
			format = strings.ToLower(showFormat)
		}
		s, err := newSongParser().FromFile(args[0], showOverrides(cmd))
		if err != nil {
			return err
		}
		return writeRecord(cmd.OutOrStdout(), s.Record(), format)
	},
}

// showOverrides collects the override flags that were explicitly set.
func showOverrides(cmd *cobra.Command) song.Overrides {
	var ov song.Overrides
	f := cmd.Flags()
	if f.Changed("title") {
		ov.Title = &showTitle
	}
	if f.Changed("artist") {
		ov.Artist = &showArtist
	}
	if f.Changed("filename") {
		ov.Filename = &showFilename
	}
	if f.Changed("tag") {
		ov.Tags = append([]string{}, showTags...)
	}
	return ov
}

func writeRecord(w io.Writer, r song.Record, format string) error {
	switch format {
	case cfgpkg.FormatJSON:
		b, err := utils.PrettyJSON(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case cfgpkg.FormatYAML, "":
		b, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case cfgpkg.FormatText:
		artist := "(none)"
		if r.Artist != nil {
			artist = *r.Artist
		}
		fmt.Fprintf(w, "title: %s\n", r.Title)
		fmt.Fprintf(w, "artist: %s\n", artist)
		fmt.Fprintf(w, "filename: %s\n", r.Filename)
		fmt.Fprintf(w, "chords: %s\n", strings.Join(r.Chords, " "))
		if len(r.Tags) > 0 {
			fmt.Fprintf(w, "tags: %s\n", strings.Join(r.Tags, ", "))
		}
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "⚠ %s\n", warn)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s (use yaml, json or text)", format)
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", "output format: yaml, json or text (overrides config)")
	showCmd.Flags().StringVar(&showTitle, "title", "", "override the parsed title")
	showCmd.Flags().StringVar(&showArtist, "artist", "", "override the parsed artist")
	showCmd.Flags().StringVar(&showFilename, "filename", "", "override the filename")
	showCmd.Flags().StringSliceVarP(&showTags, "tag", "t", nil, "tag to apply (repeatable)")
}
