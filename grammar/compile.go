package grammar

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/wordparse/parse"
	"github.com/dhamidi/wordparse/token"
)

// Node kinds produced by compiled grammars.
const (
	KindText   = "text"
	KindInt    = LeafInt
	KindFloat  = LeafFloat
	KindBool   = LeafBool
	KindString = LeafString
	KindName   = "name"
	KindWord   = LeafWord
	KindSeq    = "seq"
	KindList   = "list"
	KindPair   = "pair"
	KindNone   = "none"
)

// Node is the value every compiled grammar produces. Leaves carry Text and
// the word they were read from; seq, list and pair nodes carry Children.
// Name is the rule name or the name label of the expression that produced
// the node.
type Node struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	Line     int         `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int         `json:"column,omitempty" yaml:"column,omitempty"`
	Word     *token.Word `json:"-" yaml:"-"`
	Children []*Node     `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *Node) at(w *token.Word) *Node {
	if w != nil && n.Word == nil {
		n.Word = w
		n.Line = w.Line
		n.Column = w.ColumnFrom + 1
	}
	return n
}

// Compiled is a grammar turned into parsers. It is safe for concurrent use.
type Compiled struct {
	grammar  *Grammar
	brackets []token.BracketPair
	rules    map[string]parse.Parser[*Node]
}

// Compile validates g and builds a parser for every rule.
func (g *Grammar) Compile() (*Compiled, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	pairs, err := g.BracketPairs()
	if err != nil {
		return nil, err
	}
	c := &Compiled{
		grammar:  g,
		brackets: pairs,
		rules:    make(map[string]parse.Parser[*Node], len(g.Rules)),
	}
	for name, e := range g.Rules {
		c.rules[name] = parse.Lazy(func() parse.Parser[*Node] {
			return named(name, c.compile(e))
		})
	}
	// resolve keyword sets up front so parsers shared across goroutines
	// never compute them concurrently
	for _, name := range g.RuleNames() {
		parse.StartingKeywords(c.rules[name])
	}
	return c, nil
}

func (c *Compiled) Grammar() *Grammar {
	return c.grammar
}

func (c *Compiled) Brackets() []token.BracketPair {
	return c.brackets
}

// Parser returns the parser of the start rule.
func (c *Compiled) Parser() parse.Parser[*Node] {
	return c.rules[c.grammar.Start]
}

// Rule returns the parser of the named rule.
func (c *Compiled) Rule(name string) (parse.Parser[*Node], bool) {
	p, ok := c.rules[name]
	return p, ok
}

// Tokenize splits text with the grammar's bracket table.
func (c *Compiled) Tokenize(text string) []token.Word {
	return token.Tokenize(text, c.brackets)
}

// ParseText tokenizes text and parses all of it with the start rule.
func (c *Compiled) ParseText(ctx *parse.Context, text string) parse.Result[*Node] {
	return parse.All(ctx, c.Parser(), parse.NewWords(c.Tokenize(text)))
}

// located records the first word of the window on the produced node.
func located(p parse.Parser[*Node]) parse.Parser[*Node] {
	return parse.Func[*Node]{
		Starts: func() []string { return parse.StartingKeywords(p) },
		Fn: func(ctx *parse.Context, w parse.Words) parse.Result[*Node] {
			res := p.Parse(ctx, w)
			if res.OK && res.Value != nil && res.Rest.Start() > w.Start() {
				res.Value.at(w.First())
			}
			return res
		},
	}
}

func named(name string, p parse.Parser[*Node]) parse.Parser[*Node] {
	if name == "" {
		return p
	}
	return parse.Func[*Node]{
		Name:   name,
		Starts: func() []string { return parse.StartingKeywords(p) },
		Fn: func(ctx *parse.Context, w parse.Words) parse.Result[*Node] {
			res := p.Parse(ctx, w)
			if res.OK && res.Value != nil && res.Value.Name == "" {
				res.Value.Name = name
			}
			return res
		},
	}
}

func list(children []*Node) *Node {
	return &Node{Kind: KindList, Children: children}
}

func (c *Compiled) compile(e *Expr) parse.Parser[*Node] {
	return named(e.Name, located(c.compileKind(e)))
}

func (c *Compiled) compileKind(e *Expr) parse.Parser[*Node] {
	kind, _ := e.kind()
	switch kind {
	case "text":
		return parse.Map(parse.Text(e.Text), func(text string) *Node {
			return &Node{Kind: KindText, Text: text}
		})
	case "leaf":
		return compileLeaf(e.Leaf)
	case "ref":
		return c.rules[e.Ref]
	case "seq":
		parts := make([]parse.Parser[*Node], len(e.Seq))
		for i, child := range e.Seq {
			parts[i] = c.compile(child)
		}
		return parse.Map(parse.SeqN(KindSeq, parts...), func(children []*Node) *Node {
			return &Node{Kind: KindSeq, Children: children}
		})
	case "one_of":
		variants := make([]parse.Alternative[*Node], len(e.OneOf))
		for i, child := range e.OneOf {
			variants[i] = parse.Variant(child.String(), c.compile(child))
		}
		return parse.OneOf(e.String(), variants...)
	case "many":
		return parse.Map(parse.Many(c.compile(e.Many)), list)
	case "many1":
		return parse.Map(parse.Many1(c.compile(e.Many1)), list)
	case "optional":
		return parse.Map(parse.Optional(c.compile(e.Optional)), func(n **Node) *Node {
			if n == nil {
				return &Node{Kind: KindNone}
			}
			return *n
		})
	case "square":
		return parse.SquareBrackets(c.compile(e.Square))
	case "curly":
		return parse.CurlyBrackets(c.compile(e.Curly))
	case "parens":
		return parse.Parentheses(c.compile(e.Parens))
	case "sep_by":
		return parse.Map(parse.SeparatedBy(e.SepBy.Sep, c.compile(e.SepBy.Item)), list)
	case "sep_once":
		p := parse.SeparatedOnce(e.SepOnce.Sep, c.compile(e.SepOnce.Left), c.compile(e.SepOnce.Right))
		return parse.Map(p, func(t parse.Tuple2[*Node, *Node]) *Node {
			return &Node{Kind: KindPair, Children: []*Node{t.A, t.B}}
		})
	case "statements":
		return parse.Map(parse.Statements(c.compile(e.Statements)), list)
	case "statements1":
		return parse.Map(parse.NonEmptyStatements(c.compile(e.Statements1)), list)
	}
	// unreachable after Validate
	panic(fmt.Sprintf("grammar: cannot compile expression %q", kind))
}

func compileLeaf(kind string) parse.Parser[*Node] {
	switch kind {
	case LeafInt:
		return parse.Map(parse.Int(), func(v int64) *Node {
			return &Node{Kind: KindInt, Text: strconv.FormatInt(v, 10)}
		})
	case LeafFloat:
		return parse.Map(parse.Float(), func(v float64) *Node {
			return &Node{Kind: KindFloat, Text: strconv.FormatFloat(v, 'g', -1, 64)}
		})
	case LeafBool:
		return parse.Map(parse.Bool(), func(v bool) *Node {
			return &Node{Kind: KindBool, Text: strconv.FormatBool(v)}
		})
	case LeafString:
		return parse.Map(parse.String(), func(v string) *Node {
			return &Node{Kind: KindString, Text: v}
		})
	case LeafTypeName:
		return parse.Map(parse.TypeName(), ident)
	case LeafValueName:
		return parse.Map(parse.ValueName(), ident)
	case LeafWord:
		return parse.Map(parse.AnyWord(), func(w token.Word) *Node {
			return &Node{Kind: KindWord, Text: w.String()}
		})
	}
	panic(fmt.Sprintf("grammar: unknown leaf %q", kind))
}

func ident(id parse.Ident) *Node {
	return &Node{Kind: KindName, Text: id.Text}
}
