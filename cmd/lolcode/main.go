// ==============================================================================================
// FILE: cmd/lolcode/main.go
// ==============================================================================================
// PURPOSE: The `lolcode` CLI: tokenize, parse, and execute each file given
//          on the command line, in order. With no files it falls back to
//          an interactive session over stdin/stdout.
// ==============================================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pborman/getopt"

	"lolcode/evaluator"
	"lolcode/lexer"
	"lolcode/object"
	"lolcode/parser"
	"lolcode/repl"
	"lolcode/token"
)

// stdHost writes VISIBLE output to stdout and reads GIMMEH input from
// stdin: the "real terminal" realization of evaluator.Host.
type stdHost struct {
	in          *bufio.Scanner
	dumpSymbols bool
}

func (h *stdHost) Write(text string) {
	fmt.Fprint(os.Stdout, text)
}

func (h *stdHost) ReadLine() (string, error) {
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return h.in.Text(), nil
}

func (h *stdHost) OnSymbols(ctx *object.Context) {
	if !h.dumpSymbols {
		return
	}
	for _, name := range ctx.Symbols.Root().Names() {
		val, _ := ctx.Symbols.Root().Get(name)
		fmt.Fprintf(os.Stderr, "%s = %s\n", name, val.Inspect())
	}
}

func main() {
	var dumpTokens, dumpAST, dumpSymbols bool
	getopt.BoolVarLong(&dumpTokens, "dump-tokens", 0, "print the token stream for each file before executing it")
	getopt.BoolVarLong(&dumpAST, "dump-ast", 0, "print the parsed AST for each file before executing it")
	getopt.BoolVarLong(&dumpSymbols, "dump-symbols", 0, "print the top-level symbol table after executing each file")
	getopt.SetParameters("<file> [<file>...]")
	getopt.Parse()

	files := getopt.Args()
	if len(files) == 0 {
		repl.Start(os.Stdin, os.Stdout)
		return
	}

	host := &stdHost{in: bufio.NewScanner(os.Stdin), dumpSymbols: dumpSymbols}
	ev := evaluator.New(host)

	for _, filename := range files {
		if err := runFile(ev, filename, dumpTokens, dumpAST); err != nil {
			fmt.Fprint(os.Stderr, err.Error())
			os.Exit(1)
		}
	}
}

// runFile reads, tokenizes, parses, and evaluates a single source file in
// a fresh top-level context, returning the first lex/parse/runtime error
// encountered (nil on success).
func runFile(ev *evaluator.Evaluator, filename string, dumpTokens, dumpAST bool) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	tokens, lexErr := lexer.Tokenize(string(data))
	if lexErr != nil {
		return lexErr
	}
	if dumpTokens {
		printTokens(tokens)
	}

	program, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		return parseErr
	}
	if dumpAST {
		fmt.Fprintln(os.Stderr, program.String())
	}

	ctx := object.NewContext(filename, nil)
	if _, evalErr := ev.Eval(program, ctx); evalErr != nil {
		return evalErr
	}
	return nil
}

func printTokens(tokens []token.Token) {
	for _, tok := range tokens {
		if tok.Kind == token.NEWLINE || tok.Kind == token.EOF {
			continue
		}
		fmt.Fprintf(os.Stderr, "%-20s %-15s %s\n", tok.Category, tok.Kind, tok.Lexeme)
	}
}
