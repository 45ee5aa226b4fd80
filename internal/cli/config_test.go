package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/drawbridge/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Indent != 2 {
		t.Errorf("default Indent = %d, want 2", cfg.Indent)
	}
	if !cfg.KeepWrapperTag {
		t.Error("default KeepWrapperTag should be true")
	}
	if cfg.Format != FormatSVG {
		t.Errorf("default Format = %q, want %q", cfg.Format, FormatSVG)
	}
	if cfg.NoCache {
		t.Error("default NoCache should be false")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := loadConfig()
	if cfg != defaultConfig() {
		t.Errorf("loadConfig() without a file = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "indent = 4\nkeep_wrapper_tag = false\nformat = \"png\"\nno_cache = true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfig()
	if cfg.Indent != 4 {
		t.Errorf("Indent = %d, want 4", cfg.Indent)
	}
	if cfg.KeepWrapperTag {
		t.Error("KeepWrapperTag should be false")
	}
	if cfg.Format != FormatPNG {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatPNG)
	}
	if !cfg.NoCache {
		t.Error("NoCache should be true")
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("indent = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfig()
	if cfg.Indent != 8 {
		t.Errorf("Indent = %d, want 8", cfg.Indent)
	}
	// Unset keys keep their defaults
	if !cfg.KeepWrapperTag {
		t.Error("KeepWrapperTag should keep its default true")
	}
	if cfg.Format != FormatSVG {
		t.Errorf("Format = %q, want default %q", cfg.Format, FormatSVG)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("indent = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfig()
	if cfg != defaultConfig() {
		t.Errorf("loadConfig() with malformed file = %+v, want defaults", cfg)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{FormatSVG, false},
		{FormatPNG, false},
		{FormatDOT, false},
		{"pdf", true},
		{"", true},
		{"SVG", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
		})
	}
}
