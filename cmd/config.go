package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/songbook-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set songbook configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "chord_class: %s\n", c.ChordClass)
		if len(c.Extensions) > 0 {
			fmt.Fprintf(out, "extensions: %s\n", strings.Join(c.Extensions, ","))
		}
		fmt.Fprintf(out, "xhtml: %t\n", c.XHTML)
		fmt.Fprintf(out, "unsafe: %t\n", c.Unsafe)
		fmt.Fprintf(out, "strict_header: %t\n", c.StrictHeader)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		if c.LogLevel != "" {
			fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// edit what is on disk, not the effective config with flag and env overrides
		stored, err := cfgpkg.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		updated := *stored
		switch key {
		case "chord_class":
			updated.ChordClass = strings.TrimSpace(val)
		case "extensions":
			updated.Extensions = splitList(val)
		case "xhtml":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for xhtml: %v", val)
			}
			updated.XHTML = b
		case "unsafe":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for unsafe: %v", val)
			}
			updated.Unsafe = b
		case "strict_header":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for strict_header: %v", val)
			}
			updated.StrictHeader = b
		case "output_format":
			updated.OutputFormat = strings.ToLower(strings.TrimSpace(val))
		case "log_level":
			updated.LogLevel = strings.ToLower(strings.TrimSpace(val))
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(&updated, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func splitList(val string) []string {
	out := []string{}
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
