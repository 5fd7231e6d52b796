package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/songbook-cli/internal/ukedown"
	"github.com/KaramelBytes/songbook-cli/internal/utils"
)

// Global configuration structure.
type Global struct {
	// Rendering
	ChordClass   string   `mapstructure:"chord_class" yaml:"chord_class"`
	Extensions   []string `mapstructure:"extensions" yaml:"extensions"`
	XHTML        bool     `mapstructure:"xhtml" yaml:"xhtml"`
	Unsafe       bool     `mapstructure:"unsafe" yaml:"unsafe"`
	StrictHeader bool     `mapstructure:"strict_header" yaml:"strict_header"`

	// Output and diagnostics
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// Output formats accepted by output_format.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatText = "text"
)

var (
	chordClassPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	logLevels         = []interface{}{"trace", "debug", "info", "warn", "error", "disabled"}
)

// Validate checks the configuration values.
func (c *Global) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ChordClass, validation.Required, validation.Match(chordClassPattern)),
		validation.Field(&c.Extensions, validation.Each(validation.By(func(value interface{}) error {
			name, _ := value.(string)
			if !ukedown.KnownExtension(name) {
				return fmt.Errorf("unknown extension %q", name)
			}
			return nil
		}))),
		validation.Field(&c.OutputFormat, validation.Required, validation.In(FormatYAML, FormatJSON, FormatText)),
		validation.Field(&c.LogLevel, validation.In(logLevels...)),
	)
}

// Defaults returns the built-in configuration.
func Defaults() Global {
	return Global{
		ChordClass:   ukedown.DefaultChordClass,
		Extensions:   []string{},
		OutputFormat: FormatYAML,
		LogLevel:     "warn",
	}
}

// DefaultDir returns ~/.songbook.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".songbook"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.songbook/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	return load(cfgFile, true)
}

// LoadFile loads only the config file layered over the defaults. It is the base for
// edits that are written back, so environment overrides never leak into the file.
func LoadFile(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, withEnv bool) (*Global, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("SONGBOOK")
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
	}

	// Defaults
	d := Defaults()
	v.SetDefault("chord_class", d.ChordClass)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("xhtml", d.XHTML)
	v.SetDefault("unsafe", d.Unsafe)
	v.SetDefault("strict_header", d.StrictHeader)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("log_level", d.LogLevel)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; a config file that exists but does not parse is an error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}
