// ==============================================================================================
// FILE: repl/repl_unit_test.go
// ==============================================================================================
// PURPOSE: Unit tests for basic REPL functionality, commands, simple
//          expressions, and variable persistence across lines.
// ==============================================================================================

package repl

import (
	"bytes"
	"strings"
	"testing"
)

// runSession simulates a full REPL session over a scripted input string,
// one command/statement per line, and returns everything written to out.
func runSession(input string) string {
	in := strings.NewReader(input)
	var out bytes.Buffer
	Start(in, &out)
	return out.String()
}

func TestREPL_Math(t *testing.T) {
	input := "SUM OF 10 AN 20\n.exit"
	output := runSession(input)

	if !strings.Contains(output, "30") {
		t.Errorf("REPL failed simple math. Output:\n%s", output)
	}
}

func TestREPL_VariablePersistence(t *testing.T) {
	input := `I HAS A X ITZ 50
X R SUM OF X AN 10
X
.exit`
	output := runSession(input)

	if !strings.Contains(output, "60") {
		t.Errorf("REPL failed variable persistence. Output:\n%s", output)
	}
}

func TestREPL_Commands(t *testing.T) {
	input := `.debug
I HAS A X ITZ 10
.clear
X
.exit`
	output := runSession(input)

	if !strings.Contains(output, "[ TOKENS ]") {
		t.Error("Debug mode did not print tokens")
	}
	if !strings.Contains(output, "[ AST TREE ]") {
		t.Error("Debug mode did not print AST")
	}
	if !strings.Contains(output, "[ SYMBOLS ]") {
		t.Error("Debug mode did not print symbols")
	}

	// X was declared before .clear, so after the reset it should be
	// reported as undefined rather than silently resolving to 10.
	if !strings.Contains(output, "RuntimeError") {
		t.Error("Session was not cleared correctly")
	}
}
