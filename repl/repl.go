// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop interface.
//          It connects the user input stream to the pipeline
//          (lexer -> parser -> evaluator) and manages the persistent
//          session context across lines.
// ==============================================================================================

package repl

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"lolcode/ast"
	"lolcode/evaluator"
	"lolcode/lexer"
	"lolcode/lolerr"
	"lolcode/object"
	"lolcode/parser"
	"lolcode/token"
)

// ----------------------------------------------------------------------------
// UI CONSTANTS & CONFIGURATION
// ----------------------------------------------------------------------------

const (
	PROMPT = "LOL> "
	LOGO   = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  _       ___  _      ____ ___  ____  _____         ┃
┃ | |     / _ \| |    / ___/ _ \|  _ \| ____|        ┃
┃ | |    | | | | |   | |  | | | | | | |  _|          ┃
┃ | |___ | |_| | |___| |__| |_| | |_| | |___         ┃
┃ |_____| \___/|_____|\____\___/|____/|_____|        ┃
┃                                                    ┃
┃ interactive HAI ... KTHXBYE session                ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`
)

// ANSI Color Codes for terminal output
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
	Bold   = "\033[1m"
)

// replHost implements evaluator.Host over the REPL's own input/output
// streams: VISIBLE writes go straight to out, and GIMMEH pulls its next
// line from the same scanner driving the REPL's own prompt loop, so a
// script entered interactively can still read interactively.
type replHost struct {
	out     io.Writer
	scanner *bufio.Scanner
	debug   bool
}

func (h *replHost) Write(text string) { fmt.Fprint(h.out, text) }

func (h *replHost) ReadLine() (string, error) {
	if !h.scanner.Scan() {
		if err := h.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return h.scanner.Text(), nil
}

// OnSymbols satisfies evaluator.SymbolSink. The evaluator calls this
// unconditionally at the end of every program it runs, so the debug
// gate lives here rather than in the call site.
func (h *replHost) OnSymbols(ctx *object.Context) {
	if h.debug {
		printSymbols(h.out, ctx)
	}
}

// Start launches the Read-Eval-Print Loop. It listens to 'in', evaluates
// each line against a persistent session context, and writes results to
// 'out'. The context persists across lines so variables declared on one
// line are visible on the next, the way a LOLCODE script would see them
// within a single HAI ... KTHXBYE block.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	host := &replHost{out: out, scanner: scanner}
	ctx := object.NewContext("<repl>", nil)
	ev := evaluator.New(host)

	fmt.Fprint(out, LOGO)
	printHelp(out)

	for {
		fmt.Fprint(out, Cyan+PROMPT+Reset)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			switch line {
			case ".exit":
				fmt.Fprintln(out, Yellow+"Goodbye!"+Reset)
				return
			case ".clear":
				ctx = object.NewContext("<repl>", nil)
				fmt.Fprintln(out, Green+"Session cleared (IT and all variables reset)."+Reset)
				continue
			case ".debug":
				host.debug = !host.debug
				status := "DISABLED"
				if host.debug {
					status = "ENABLED"
				}
				fmt.Fprintf(out, Gray+"Debug mode %s\n"+Reset, status)
				continue
			case ".help":
				printHelp(out)
				continue
			default:
				fmt.Fprintf(out, Red+"Unknown command: %s. Type .help for info.\n"+Reset, line)
				continue
			}
		}

		// Every line is its own complete program. HAI/KTHXBYE is the
		// grammar's outermost production, so a bare statement needs the
		// envelope wrapped around it. Multiple statements on one line
		// stay reachable via comma, LOLCODE's inline statement separator.

		// --- 1. LEXER ---
		tokens, lexErr := lexer.Tokenize("HAI 1.2\n" + line + "\nKTHXBYE\n")
		if lexErr != nil {
			printError(out, lexErr)
			continue
		}
		if host.debug {
			printTokens(out, tokens)
		}

		// --- 2. PARSER ---
		program, parseErr := parser.Parse(tokens)
		if parseErr != nil {
			printError(out, parseErr)
			continue
		}
		if host.debug {
			printAST(out, program)
		}

		// --- 3. EVALUATOR --- (OnSymbols fires automatically at the end
		// of evalProgram when debug mode has it gated open, see above)
		result, evalErr := ev.Eval(program, ctx)
		if evalErr != nil {
			printError(out, evalErr)
			continue
		}
		// VISIBLE already wrote its own output through the host; echoing
		// its return value too would print the line twice.
		if !lastStmtIsPrint(program.Body) {
			printEvalResult(out, result)
		}
	}
}

func lastStmtIsPrint(body *ast.StmtList) bool {
	if body == nil || len(body.Stmts) == 0 {
		return false
	}
	_, ok := body.Stmts[len(body.Stmts)-1].(*ast.Print)
	return ok
}

// ----------------------------------------------------------------------------
// HELPER FUNCTIONS
// ----------------------------------------------------------------------------

func printHelp(out io.Writer) {
	fmt.Fprintln(out, Gray+"Commands:")
	fmt.Fprintln(out, "  .exit   Quit the REPL")
	fmt.Fprintln(out, "  .clear  Reset the session (IT and all variables)")
	fmt.Fprintln(out, "  .debug  Toggle token/AST/symbol dumps after each line")
	fmt.Fprintln(out, "  .help   Show this message"+Reset)
	fmt.Fprintln(out)
}

func printTokens(out io.Writer, tokens []token.Token) {
	fmt.Fprintln(out, Gray+"┌── [ TOKENS ] ──────────────────────────────────────────┐"+Reset)
	for _, tok := range tokens {
		if tok.Kind == token.NEWLINE || tok.Kind == token.EOF {
			continue
		}
		fmt.Fprintf(out, "│ %-20s : %s\n", tok.Category, tok.Lexeme)
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}

func printAST(out io.Writer, program *ast.Program) {
	fmt.Fprintln(out, Gray+"┌── [ AST TREE ] ────────────────────────────────────────┐"+Reset)
	if str := program.String(); str != "" {
		fmt.Fprintf(out, "%s\n", str)
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}

// printSymbols dumps the session's top-level bindings, the debug-mode
// realization of the embedding contract's optional on_symbols sink.
func printSymbols(out io.Writer, ctx *object.Context) {
	names := ctx.Symbols.Root().Names()
	sort.Strings(names)
	fmt.Fprintln(out, Gray+"┌── [ SYMBOLS ] ─────────────────────────────────────────┐"+Reset)
	for _, name := range names {
		val, _ := ctx.Symbols.Root().Get(name)
		fmt.Fprintf(out, "│ %-15s = %s\n", name, val.Inspect())
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}

func printError(out io.Writer, err *lolerr.Error) {
	fmt.Fprint(out, Red+Bold+err.Error()+Reset)
}

// printEvalResult formats the last statement's value the way a LOLCODE
// VISIBLE would: NOOB results (bare declarations, assignments with no
// caller-visible effect) print nothing.
func printEvalResult(out io.Writer, val object.Value) {
	if val == nil {
		return
	}
	if _, isNoob := val.(*object.Noob); isNoob {
		return
	}

	str := val.Inspect()
	switch v := val.(type) {
	case *object.Int, *object.Flt:
		fmt.Fprintf(out, Yellow+"%s\n"+Reset, str)
	case *object.Bool:
		color := Green
		if !v.Value {
			color = Red
		}
		fmt.Fprintf(out, color+"%s\n"+Reset, str)
	case *object.Str:
		fmt.Fprintf(out, Green+"%s\n"+Reset, str)
	case *object.Function:
		fmt.Fprintf(out, Purple+"%s\n"+Reset, str)
	case *object.Array:
		fmt.Fprintf(out, Blue+"%s\n"+Reset, str)
	default:
		fmt.Fprintf(out, "%s\n", str)
	}
}
