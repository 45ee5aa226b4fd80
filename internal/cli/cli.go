// Package cli implements the drawbridge command-line interface.
//
// This package provides commands for decoding draw.io diagram files,
// re-encoding plain markup, printing logical trees, and rendering
// visualizations. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - decode: Decompress a .drawio file into readable markup
//   - encode: Compress markup back into the .drawio format
//   - tree: Print the logical parent/child tree of a diagram
//   - visualize: Render the logical tree as SVG, PNG, or DOT
//   - cache: Manage the render artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/drawbridge/pkg/buildinfo"
	"github.com/matzehuels/drawbridge/pkg/cache"
	"github.com/matzehuels/drawbridge/pkg/mx"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "drawbridge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the user's
// configuration file applied over the defaults.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: loadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Drawbridge reads and writes draw.io diagram files",
		Long:         `Drawbridge is a CLI tool for inspecting draw.io (mxfile) diagram documents: it decodes the compressed payloads, reconstructs the logical element tree, and renders it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Document Loading
// =============================================================================

// loadOptions builds library load options from the CLI state.
func (c *CLI) loadOptions() mx.LoadOptions {
	opts := mx.DefaultLoadOptions()
	opts.Logger = c.Logger
	opts.KeepWrapperTag = c.Config.KeepWrapperTag
	opts.Indent = c.Config.Indent
	return opts
}

// newStore creates the artifact store, falling back to a null store when
// caching is disabled or the cache directory is unavailable.
func (c *CLI) newStore(noCache bool) cache.Store {
	if noCache || c.Config.NoCache {
		return cache.NewNullStore()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullStore()
	}
	fs, err := cache.NewFileStore(dir)
	if err != nil {
		return cache.NewNullStore()
	}
	return fs
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/drawbridge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/drawbridge/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
