package config

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{".wordparse.toml", "grammar = \"g.yaml\"\nbrackets = [\"()\"]\nverbosity = 1\nlog_verbosity = 2\nlog_file = \"x.log\"\n"},
		{".wordparse.yaml", "grammar: g.yaml\nbrackets: [\"()\"]\nverbosity: 1\nlog_verbosity: 2\nlog_file: x.log\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			write(t, path, tt.content)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Grammar != filepath.Join(dir, "g.yaml") {
				t.Errorf("got grammar %q", cfg.Grammar)
			}
			if cfg.Verbosity != 1 || cfg.LogVerbosity != 2 || cfg.LogFile != "x.log" || cfg.Path != path {
				t.Errorf("got %+v", cfg)
			}
			pairs, err := cfg.BracketPairs()
			if err != nil || len(pairs) != 1 || pairs[0].Open != '(' || pairs[0].Close != ')' {
				t.Errorf("got %v, %v", pairs, err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	write(t, path, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Brackets) != 3 || cfg.Verbosity != 0 || cfg.Grammar != "" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"unknown.toml":  "colour = \"red\"\n",
		"unknown.yaml":  "colour: red\n",
		"brackets.toml": "brackets = [\"<<>\"]\n",
		"syntax.toml":   "grammar = \n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			write(t, path, content)
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".wordparse.yml"), "verbosity: 3\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Verbosity != 3 || filepath.Base(cfg.Path) != ".wordparse.yml" {
		t.Errorf("got %+v", cfg)
	}

	// toml wins over yaml in the same directory
	write(t, filepath.Join(nested, ".wordparse.toml"), "verbosity = 4\n")
	cfg, err = Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Verbosity != 4 {
		t.Errorf("got %+v", cfg)
	}
}
