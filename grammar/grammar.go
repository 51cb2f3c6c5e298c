// Package grammar loads declarative grammar files and compiles them into
// parsers.
//
// A grammar names a start rule and maps rule names to expressions. Each
// expression sets exactly one of its keys:
//
//	start: program
//	rules:
//	  program:
//	    statements: {ref: decl}
//	  decl:
//	    one_of:
//	      - seq: [{text: let}, {leaf: value_name}, {text: "="}, {ref: value}]
//	      - seq: [{text: fn}, {leaf: value_name}, {parens: {sep_by: {sep: ",", item: {leaf: value_name}}}}]
//	  value:
//	    one_of: [{leaf: int}, {leaf: string}, {square: {sep_by: {sep: ",", item: {ref: value}}}}]
//
// The same structure can be written in TOML.
package grammar

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// DetectFormat picks the format from a file extension. Anything that is not
// .toml is read as YAML.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

type Grammar struct {
	Start    string           `yaml:"start" toml:"start"`
	Brackets []string         `yaml:"brackets,omitempty" toml:"brackets,omitempty"`
	Rules    map[string]*Expr `yaml:"rules" toml:"rules"`
}

// Expr is one grammar expression. Exactly one field other than Name is set.
type Expr struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`

	Text string `yaml:"text,omitempty" toml:"text,omitempty"`
	Leaf string `yaml:"leaf,omitempty" toml:"leaf,omitempty"`
	Ref  string `yaml:"ref,omitempty" toml:"ref,omitempty"`

	Seq   []*Expr `yaml:"seq,omitempty" toml:"seq,omitempty"`
	OneOf []*Expr `yaml:"one_of,omitempty" toml:"one_of,omitempty"`

	Many     *Expr `yaml:"many,omitempty" toml:"many,omitempty"`
	Many1    *Expr `yaml:"many1,omitempty" toml:"many1,omitempty"`
	Optional *Expr `yaml:"optional,omitempty" toml:"optional,omitempty"`

	Square *Expr `yaml:"square,omitempty" toml:"square,omitempty"`
	Curly  *Expr `yaml:"curly,omitempty" toml:"curly,omitempty"`
	Parens *Expr `yaml:"parens,omitempty" toml:"parens,omitempty"`

	SepBy   *SepBy   `yaml:"sep_by,omitempty" toml:"sep_by,omitempty"`
	SepOnce *SepOnce `yaml:"sep_once,omitempty" toml:"sep_once,omitempty"`

	Statements  *Expr `yaml:"statements,omitempty" toml:"statements,omitempty"`
	Statements1 *Expr `yaml:"statements1,omitempty" toml:"statements1,omitempty"`
}

type SepBy struct {
	Sep  string `yaml:"sep" toml:"sep"`
	Item *Expr  `yaml:"item" toml:"item"`
}

type SepOnce struct {
	Sep   string `yaml:"sep" toml:"sep"`
	Left  *Expr  `yaml:"left" toml:"left"`
	Right *Expr  `yaml:"right" toml:"right"`
}

// Leaf kinds accepted by the leaf key.
const (
	LeafInt       = "int"
	LeafFloat     = "float"
	LeafBool      = "bool"
	LeafString    = "string"
	LeafTypeName  = "type_name"
	LeafValueName = "value_name"
	LeafWord      = "word"
)

var leafKinds = []string{LeafInt, LeafFloat, LeafBool, LeafString, LeafTypeName, LeafValueName, LeafWord}

func Load(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar: %w", err)
	}
	g, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func Parse(data []byte, format Format) (*Grammar, error) {
	g := &Grammar{}
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), g)
		if err != nil {
			return nil, fmt.Errorf("parsing TOML grammar: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown grammar key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(g); err != nil {
			return nil, fmt.Errorf("parsing YAML grammar: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported grammar format %s", format)
	}
	return g, nil
}

// kind names the key an expression sets, or the empty string when it sets
// none. count is the number of keys set.
func (e *Expr) kind() (kind string, count int) {
	set := func(ok bool, name string) {
		if ok {
			count++
			if kind == "" {
				kind = name
			}
		}
	}
	set(e.Text != "", "text")
	set(e.Leaf != "", "leaf")
	set(e.Ref != "", "ref")
	set(e.Seq != nil, "seq")
	set(e.OneOf != nil, "one_of")
	set(e.Many != nil, "many")
	set(e.Many1 != nil, "many1")
	set(e.Optional != nil, "optional")
	set(e.Square != nil, "square")
	set(e.Curly != nil, "curly")
	set(e.Parens != nil, "parens")
	set(e.SepBy != nil, "sep_by")
	set(e.SepOnce != nil, "sep_once")
	set(e.Statements != nil, "statements")
	set(e.Statements1 != nil, "statements1")
	return kind, count
}

// children returns the sub-expressions of e in declaration order.
func (e *Expr) children() []*Expr {
	switch {
	case e.Seq != nil:
		return e.Seq
	case e.OneOf != nil:
		return e.OneOf
	case e.SepBy != nil:
		return []*Expr{e.SepBy.Item}
	case e.SepOnce != nil:
		return []*Expr{e.SepOnce.Left, e.SepOnce.Right}
	}
	for _, inner := range []*Expr{e.Many, e.Many1, e.Optional, e.Square, e.Curly, e.Parens, e.Statements, e.Statements1} {
		if inner != nil {
			return []*Expr{inner}
		}
	}
	return nil
}

// String renders a short description of e used as a default label.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.Name != "" {
		return e.Name
	}
	kind, _ := e.kind()
	switch kind {
	case "text":
		return fmt.Sprintf("%q", e.Text)
	case "leaf":
		return strings.ReplaceAll(e.Leaf, "_", " ")
	case "ref":
		return e.Ref
	}
	return kind
}
