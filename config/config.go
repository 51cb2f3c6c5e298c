// Package config loads the settings of the wordparse tools from a TOML or
// YAML file.
//
//	# .wordparse.toml
//	grammar = "grammars/decl.yaml"
//	brackets = ["{}", "()", "[]"]
//	verbosity = 1
//	log_verbosity = 2
//	log_file = "wordparse.log"
//
// Discover looks for such a file in a directory and its parents.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/wordparse/token"
)

// FileNames are the names Discover looks for, in order of preference.
var FileNames = []string{".wordparse.toml", ".wordparse.yaml", ".wordparse.yml"}

type Config struct {
	// Grammar is the grammar file used by parse and lsp when none is given
	// on the command line. A relative path is resolved against the
	// directory of the config file.
	Grammar string `toml:"grammar" yaml:"grammar"`
	// Brackets is the tokenizer bracket table for tokenize.
	Brackets []string `toml:"brackets" yaml:"brackets"`
	// Verbosity 0 hides unlikely diagnostics, 1 and above shows them.
	Verbosity int `toml:"verbosity" yaml:"verbosity"`
	// LogVerbosity is passed to commonlog.Configure.
	LogVerbosity int    `toml:"log_verbosity" yaml:"log_verbosity"`
	LogFile      string `toml:"log_file" yaml:"log_file"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

func Default() Config {
	return Config{
		Brackets: []string{"{}", "()", "[]"},
	}
}

// Load reads path, TOML for .toml and YAML otherwise. Keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document leaves the defaults alone
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.Path = path
	if cfg.Grammar != "" && !filepath.IsAbs(cfg.Grammar) {
		cfg.Grammar = filepath.Join(filepath.Dir(path), cfg.Grammar)
	}
	if _, err := cfg.BracketPairs(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the first config file found in dir or one of its parents.
// Without one it returns the defaults.
func Discover(dir string) (Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("looking for config: %w", err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c Config) BracketPairs() ([]token.BracketPair, error) {
	if len(c.Brackets) == 0 {
		return token.DefaultBrackets, nil
	}
	return token.ParseBrackets(c.Brackets)
}
