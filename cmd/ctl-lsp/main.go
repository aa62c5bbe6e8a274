// Command ctl-lsp runs a diagnostics-only Language Server Protocol
// server over stdio for editors.
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/antonromanov1/ctl/internal/lsp"
)

const serverName = "ctl"

var version = "0.1.0"

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler()

	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, serverName, false)

	log.Println("Starting", serverName, "LSP server", version)

	if err := s.RunStdio(); err != nil {
		log.Println("LSP server error:", err)
		os.Exit(1)
	}
}
