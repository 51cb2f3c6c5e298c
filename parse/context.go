package parse

import (
	"strings"

	"github.com/dhamidi/wordparse/token"
	"github.com/tliron/commonlog"
)

// Tracer receives parse events. Every commonlog.Logger is a Tracer.
type Tracer interface {
	AllowLevel(level commonlog.Level) bool
	Debugf(format string, values ...any)
}

// Context is the per-parse scope handed to every parser. It is not safe for
// concurrent use; start one per parse.
type Context struct {
	tracer Tracer
	depth  int
}

type Option func(*Context)

// WithTracer sends a debug line to t for every parser event.
func WithTracer(t Tracer) Option {
	return func(c *Context) {
		c.tracer = t
	}
}

func NewContext(opts ...Option) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) tracing() bool {
	return c != nil && c.tracer != nil && c.tracer.AllowLevel(commonlog.Debug)
}

func (c *Context) trace(event, name, detail string) {
	indent := strings.Repeat("  ", c.depth)
	if detail == "" {
		c.tracer.Debugf("%s%s %s", indent, event, name)
		return
	}
	c.tracer.Debugf("%s%s %s: %s", indent, event, name, detail)
}

func describe(w *token.Word) string {
	if w == nil {
		return "end of input"
	}
	return w.Position() + " " + quote(w.String())
}

// enter must be paired with leave.
func (c *Context) enter(name string) {
	if !c.tracing() {
		if c != nil {
			c.depth++
		}
		return
	}
	c.trace("start", name, "")
	c.depth++
}

func (c *Context) leave(name string) {
	if c == nil {
		return
	}
	c.depth--
	if c.tracing() {
		c.trace("end", name, "")
	}
}

func (c *Context) parsed(name string, w *token.Word) {
	if c.tracing() {
		c.trace("parsed", name, describe(w))
	}
}

func (c *Context) failed(name string, w *token.Word) {
	if c.tracing() {
		c.trace("failed", name, describe(w))
	}
}

func (c *Context) note(name, message string) {
	if c.tracing() {
		c.trace("note", name, message)
	}
}
