package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/songbook-cli/internal/config"
	"github.com/KaramelBytes/songbook-cli/internal/song"
	"github.com/KaramelBytes/songbook-cli/internal/ukedown"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	strict  bool

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "songbook",
	Short: "songbook: parse ukedown songsheets",
	Long: `songbook reads ukedown songsheets (Markdown with [Chord] annotations) and extracts
the title, artist, ordered chord list and rendered HTML body of each song.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.songbook/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on songs with more than one level-1 header (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		d := cfgpkg.Defaults()
		c = &d
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("strict") {
		cfg.StrictHeader = strict
	}
	logger = newLogger(cfg.LogLevel, debug)
}

func newLogger(level string, debug bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// currentConfig returns the loaded configuration, or the defaults when loading was
// skipped.
func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		d := cfgpkg.Defaults()
		cfg = &d
	}
	return cfg
}

// newSongParser builds the song parser from the effective configuration.
func newSongParser() *song.Parser {
	c := currentConfig()
	r := ukedown.New(ukedown.Config{
		ChordClass: c.ChordClass,
		XHTML:      c.XHTML,
		Unsafe:     c.Unsafe,
	})
	return song.NewParser(r,
		song.WithExtensions(c.Extensions...),
		song.WithStrictHeader(c.StrictHeader),
		song.WithLogger(logger),
	)
}
