// Package errors formats the compiler's diagnostics the way the CLI and
// the language server both need them: a single-line message plus a
// source position, rendered rustc-style for a terminal.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/antonromanov1/ctl/internal/ast"
)

// Level distinguishes the compiler stage a diagnostic originated from.
type Level int

const (
	LevelLexical Level = iota
	LevelSyntactic
	LevelSemantic
	LevelIO
)

func (l Level) label() string {
	switch l {
	case LevelLexical:
		return "lexical error"
	case LevelSyntactic:
		return "syntax error"
	case LevelSemantic:
		return "error"
	case LevelIO:
		return "error"
	default:
		return "error"
	}
}

// CompilerError is the single diagnostic shape shared by every stage.
type CompilerError struct {
	Level   Level
	Code    string
	Message string
	Pos     ast.Position
}

// Reporter formats CompilerErrors against one source file, highlighting
// the offending line the way rustc does.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter prepares a Reporter over filename's already-read source.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders ce as a multi-line, colorized diagnostic. Color is
// disabled automatically by fatih/color when stdout is not a terminal.
func (r *Reporter) Format(ce CompilerError) string {
	var sb strings.Builder

	header := color.New(color.FgRed, color.Bold)
	fmt.Fprintf(&sb, "%s[%s]: %s\n", header.Sprint(ce.Level.label()), ce.Code, ce.Message)

	location := color.New(color.FgBlue, color.Bold)
	fmt.Fprintf(&sb, "  %s %s:%d:%d\n", location.Sprint("-->"), r.filename, ce.Pos.Line, ce.Pos.Column)

	if ce.Pos.Line >= 1 && ce.Pos.Line <= len(r.lines) {
		lineText := r.lines[ce.Pos.Line-1]
		gutter := fmt.Sprintf("%d", ce.Pos.Line)
		fmt.Fprintf(&sb, "%s | %s\n", gutter, lineText)
		marker := strings.Repeat(" ", len(gutter)+3+max(0, ce.Pos.Column-1)) + color.New(color.FgRed, color.Bold).Sprint("^")
		sb.WriteString(marker)
		sb.WriteString("\n")
	}

	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
