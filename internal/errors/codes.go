package errors

// Error codes. Lexical errors use the L-prefix since they come from a
// different stage than the E-coded syntactic/semantic ones; there are no
// warnings in this front end (no unused-variable or unreachable-code
// analysis is in scope).
const (
	CodeLexical = "L0001"

	CodeSyntax = "E0100"

	CodeUndeclaredVariable = "E0200"
	CodeUndeclaredFunction = "E0201"
	CodeArityMismatch      = "E0202"
	CodeDuplicateLocal     = "E0203"
	CodeReturnMismatch     = "E0204"

	CodeIO = "E0300"
)
