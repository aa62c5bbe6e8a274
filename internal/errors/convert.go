package errors

import "github.com/antonromanov1/ctl/internal/parser"

// FromScanError wraps a lexer failure as a CompilerError.
func FromScanError(e *parser.ScanError) CompilerError {
	return CompilerError{Level: LevelLexical, Code: CodeLexical, Message: e.Message, Pos: e.Pos}
}

// FromParseError wraps a parser failure as a CompilerError. The parser
// does not distinguish its own syntactic errors from the semantic checks
// woven into it, so both are reported at CodeSyntax; callers that need a
// finer taxonomy can inspect the message text.
func FromParseError(e *parser.ParseError) CompilerError {
	return CompilerError{Level: LevelSyntactic, Code: CodeSyntax, Message: e.Message, Pos: e.Pos}
}
