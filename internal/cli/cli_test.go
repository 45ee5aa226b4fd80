package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drawbridge/pkg/cache"
)

func TestNew(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
	if c.Config.Indent != 2 {
		t.Errorf("Config.Indent = %d, want default 2", c.Config.Indent)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}

	want := []string{"decode", "encode", "tree", "visualize", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestLoadOptions(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	c.Config.Indent = 4
	c.Config.KeepWrapperTag = false

	opts := c.loadOptions()
	if opts.Indent != 4 {
		t.Errorf("opts.Indent = %d, want 4", opts.Indent)
	}
	if opts.KeepWrapperTag {
		t.Error("opts.KeepWrapperTag should be false")
	}
	if opts.Logger != c.Logger {
		t.Error("opts.Logger should be the CLI logger")
	}
}

func TestNewStoreDisabled(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)

	store := c.newStore(true)
	defer store.Close()

	// A disabled store persists nothing
	ctx := context.Background()
	a := &cache.Artifact{Format: "svg", DotHash: cache.Hash([]byte("digraph G {}")), Data: []byte("<svg/>")}
	if err := store.Put(ctx, a, 0); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if _, ok, _ := store.Get(ctx, a.DotHash, "svg", false); ok {
		t.Error("disabled store should always miss")
	}
}

func TestWriteOutputToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := writeOutput(path, []byte("hello")); err != nil {
		t.Fatalf("writeOutput() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("written data = %q, want %q", data, "hello")
	}
}
