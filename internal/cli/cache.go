package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. The store groups
// artifacts in one subdirectory per output format, so clearing reports a
// per-format breakdown.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached render artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			formats, err := os.ReadDir(dir)
			if os.IsNotExist(err) || len(formats) == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read cache dir: %w", err)
			}

			total := 0
			for _, f := range formats {
				sub := filepath.Join(dir, f.Name())
				if !f.IsDir() {
					if os.Remove(sub) == nil {
						total++
					}
					continue
				}
				entries, err := os.ReadDir(sub)
				if err != nil {
					continue
				}
				count := 0
				for _, e := range entries {
					if os.Remove(filepath.Join(sub, e.Name())) == nil {
						count++
					}
				}
				os.Remove(sub)
				if count > 0 {
					printDetail("%s: %d", f.Name(), count)
				}
				total += count
			}

			printSuccess("Cleared %d cached artifacts", total)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
