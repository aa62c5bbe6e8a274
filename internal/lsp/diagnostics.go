package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/antonromanov1/ctl/internal/parser"
)

func convertScanError(e *parser.ScanError) protocol.Diagnostic {
	line := uint32(e.Pos.Line - 1)
	col := uint32(e.Pos.Column - 1)
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("scanner"),
		Message:  e.Message,
	}
}

func convertParseError(e *parser.ParseError) protocol.Diagnostic {
	line := uint32(e.Pos.Line - 1)
	col := uint32(e.Pos.Column - 1)
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("parser"),
		Message:  e.Message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func ptrString(s string) *string { return &s }
