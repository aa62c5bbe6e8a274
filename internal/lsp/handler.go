// Package lsp implements a diagnostics-only Language Server Protocol
// front end over this compiler's lexer and parser, built on glsp's
// protocol.Handler wiring.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/antonromanov1/ctl/internal/ast"
	"github.com/antonromanov1/ctl/internal/parser"
)

// Handler implements the subset of the LSP needed to publish
// lex/parse diagnostics for open documents: didOpen/didChange/didClose
// plus the Initialize handshake. There is no completion or semantic
// token support; the language has no symbols worth completing beyond
// what the editor's own word-based suggestions already offer.
type Handler struct {
	mu        sync.RWMutex
	content   map[string]string
	functions map[string][]*ast.Function
}

// NewHandler returns an empty Handler ready to be wired into a
// protocol.Handler.
func NewHandler() *Handler {
	return &Handler{
		content:   make(map[string]string),
		functions: make(map[string][]*ast.Function),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("LSP Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("LSP Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.reparseAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// TextDocumentSyncKindFull guarantees the final change carries the
	// whole document text.
	last := params.ContentChanges[len(params.ContentChanges)-1]
	change, ok := last.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("unexpected incremental content change for %s", params.TextDocument.URI)
	}
	return h.reparseAndPublish(ctx, params.TextDocument.URI, change.Text)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.functions, path)
	return nil
}

func (h *Handler) reparseAndPublish(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	tokens, scanErr := parser.NewScanner(text).Scan()
	if scanErr != nil {
		sendDiagnostics(ctx, uri, []protocol.Diagnostic{convertScanError(scanErr)})
		return nil
	}

	functions, parseErr := parser.NewParser(tokens).ParseProgram()
	if parseErr != nil {
		sendDiagnostics(ctx, uri, []protocol.Diagnostic{convertParseError(parseErr)})
		return nil
	}

	h.mu.Lock()
	h.content[path] = text
	h.functions[path] = functions
	h.mu.Unlock()

	sendDiagnostics(ctx, uri, []protocol.Diagnostic{})
	return nil
}

func uriToPath(rawURI protocol.DocumentUri) (string, error) {
	u, err := url.Parse(string(rawURI))
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 2 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         string(uri),
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
