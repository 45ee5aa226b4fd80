package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/drawbridge/pkg/errors"
)

// Output formats for the visualize command.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// Config holds user preferences loaded from config.toml. Flags override
// config values; config values override the built-in defaults.
type Config struct {
	// Indent is the pretty-print indent width for decoded markup.
	Indent int `toml:"indent"`

	// KeepWrapperTag keeps diagram wrapper tags in decoded output.
	// Dropping them makes documents impossible to re-encode.
	KeepWrapperTag bool `toml:"keep_wrapper_tag"`

	// Format is the default visualize output format: svg, png, or dot.
	Format string `toml:"format"`

	// NoCache disables the render artifact cache.
	NoCache bool `toml:"no_cache"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Indent:         2,
		KeepWrapperTag: true,
		Format:         FormatSVG,
	}
}

// loadConfig reads ~/.config/drawbridge/config.toml over the defaults.
// A missing or unreadable file silently yields the defaults; a present but
// malformed file does too, since config must never block the tool.
func loadConfig() Config {
	cfg := defaultConfig()

	dir, err := configDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig()
	}
	if cfg.Indent <= 0 {
		cfg.Indent = defaultConfig().Indent
	}
	return cfg
}

// ValidateFormat checks a visualize output format.
func ValidateFormat(format string) error {
	switch format {
	case FormatSVG, FormatPNG, FormatDOT:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, or dot)", format)
}
