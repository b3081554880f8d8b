// ==============================================================================================
// FILE: repl/repl_sanity_test.go
// ==============================================================================================
// PURPOSE: Sanity checks for the REPL. Empty lines, lex/parse errors, and
//          unknown dot-commands should all be reported gracefully rather
//          than crashing the session.
// ==============================================================================================

package repl

import (
	"strings"
	"testing"
)

func TestSanity_EmptyLines(t *testing.T) {
	input := "\n\n\n\nVISIBLE 10\n.exit"
	output := runSession(input)
	if !strings.Contains(output, "10") {
		t.Error("REPL choked on empty lines")
	}
}

func TestSanity_ParseErrors(t *testing.T) {
	input := "I HAS A\n.exit"
	output := runSession(input)
	if !strings.Contains(output, "SyntaxError") {
		t.Error("REPL did not report parser errors gracefully")
	}
}

func TestSanity_LexErrors(t *testing.T) {
	input := "VISIBLE \"unterminated\n.exit"
	output := runSession(input)
	if !strings.Contains(output, "LexError") {
		t.Error("REPL did not report lexer errors gracefully")
	}
}

func TestSanity_UnknownCommand(t *testing.T) {
	input := ".foobar\n.exit"
	output := runSession(input)
	if !strings.Contains(output, "Unknown command") {
		t.Error("REPL did not catch unknown command")
	}
}
