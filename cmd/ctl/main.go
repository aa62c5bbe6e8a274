// Command ctl is the batch compiler driver: it reads a source file,
// runs it through the lexer, parser, IR builder, and CFG builder, and
// prints the textual dump of the resulting basic blocks.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/antonromanov1/ctl/internal/errors"
	"github.com/antonromanov1/ctl/internal/ir"
	"github.com/antonromanov1/ctl/internal/parser"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: ctl <source-file>")
		return
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString("error"), err)
		os.Exit(1)
	}

	functions, parseErr := parser.ParseSource(string(source))
	if parseErr != nil {
		reportAndExit(path, string(source), parseErr)
	}

	irFunctions := make([]*ir.Function, len(functions))
	for i, fn := range functions {
		f := ir.BuildFunction(fn)
		ir.BuildCFG(f)
		irFunctions[i] = f
	}

	fmt.Print(ir.DumpProgram(irFunctions))
}

func reportAndExit(path, source string, err error) {
	reporter := errors.NewReporter(path, source)

	var ce errors.CompilerError
	switch e := err.(type) {
	case *parser.ScanError:
		ce = errors.FromScanError(e)
	case *parser.ParseError:
		ce = errors.FromParseError(e)
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString("error"), err)
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, reporter.Format(ce))
	os.Exit(1)
}
