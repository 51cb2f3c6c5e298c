// Package lsp serves parse diagnostics for documents written in a grammar
// file's language over the Language Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/wordparse/diag"
	"github.com/dhamidi/wordparse/grammar"
	"github.com/dhamidi/wordparse/parse"
)

const lsName = "wordparse"

var log = commonlog.GetLogger("wordparse.lsp")

type Server struct {
	compiled  *grammar.Compiled
	verbosity int
	version   string

	handler protocol.Handler
	server  *server.Server

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

// NewServer returns a server checking documents against c. Unlikely
// diagnostics are published as hints when verbosity is above 0.
func NewServer(c *grammar.Compiled, verbosity int, version string) *Server {
	ls := &Server{
		compiled:  c,
		verbosity: verbosity,
		version:   version,
		docs:      map[protocol.DocumentUri]string{},
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) RunTCP(address string) error {
	return ls.server.RunTCP(address)
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("serving grammar with start rule %q", ls.compiled.Grammar().Start)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()
	publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	ls.mu.Lock()
	text, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()
	if ok {
		ls.update(ctx, params.TextDocument.URI, text)
	}
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()

	diagnostics := Diagnostics(ls.compiled, text, ls.verbosity)
	log.Debugf("%s: %d diagnostics", displayPath(uri), len(diagnostics))
	publish(ctx, uri, diagnostics)
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnostics parses text with c and converts the grouped errors into LSP
// diagnostics. Errors at end of input are placed at the end of the text.
func Diagnostics(c *grammar.Compiled, text string, verbosity int) []protocol.Diagnostic {
	res := c.ParseText(parse.NewContext(parse.WithTracer(log)), text)
	lines := strings.Split(text, "\n")
	source := lsName

	out := []protocol.Diagnostic{}
	for _, d := range diag.Filter(diag.Group(res.Errors), verbosity) {
		var rng protocol.Range
		if d.EndOfInput() {
			end := endPosition(lines)
			rng = protocol.Range{Start: end, End: end}
		} else {
			line := ""
			if d.Line-1 < len(lines) {
				line = lines[d.Line-1]
			}
			to := d.ColumnTo
			if to <= d.ColumnFrom {
				to = d.ColumnFrom + 1
			}
			rng = protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(d.Line - 1), Character: utf16Column(line, d.ColumnFrom)},
				End:   protocol.Position{Line: protocol.UInteger(d.Line - 1), Character: utf16Column(line, to)},
			}
		}
		severity := protocol.DiagnosticSeverityError
		if d.Unlikely {
			severity = protocol.DiagnosticSeverityHint
		}
		out = append(out, protocol.Diagnostic{
			Range:    rng,
			Severity: &severity,
			Source:   &source,
			Message:  d.Message(),
		})
	}
	return out
}

func endPosition(lines []string) protocol.Position {
	last := len(lines) - 1
	return protocol.Position{
		Line:      protocol.UInteger(last),
		Character: utf16Column(lines[last], utf8.RuneCountInString(lines[last])),
	}
}

// utf16Column converts a rune offset within line into the UTF-16 offset LSP
// positions use. Offsets past the end of the line are kept as they are.
func utf16Column(line string, runes int) protocol.UInteger {
	units, i := 0, 0
	for _, r := range line {
		if i == runes {
			return protocol.UInteger(units)
		}
		units += utf16.RuneLen(r)
		i++
	}
	return protocol.UInteger(units + runes - i)
}

func displayPath(uri protocol.DocumentUri) string {
	if strings.HasPrefix(uri, "file://") {
		if parsed, err := url.Parse(uri); err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
