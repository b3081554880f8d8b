// ==============================================================================================
// FILE: system_test.go
// ==============================================================================================
// PURPOSE: System-level integration tests. These verify that lexer,
//          parser, and evaluator work together end-to-end across a
//          handful of concrete scenarios, and that cross-cutting
//          invariants hold.
// ==============================================================================================

package tests

import (
	"io"
	"strings"
	"testing"

	"lolcode/evaluator"
	"lolcode/lexer"
	"lolcode/object"
	"lolcode/parser"
)

// fakeHost buffers VISIBLE output and replays scripted GIMMEH lines, the
// same shape evaluator's own tests use.
type fakeHost struct {
	out   strings.Builder
	lines []string
}

func (h *fakeHost) Write(text string) { h.out.WriteString(text) }

func (h *fakeHost) ReadLine() (string, error) {
	if len(h.lines) == 0 {
		return "", io.EOF
	}
	line := h.lines[0]
	h.lines = h.lines[1:]
	return line, nil
}

// run tokenizes, parses, and evaluates a full program, returning the
// captured VISIBLE output and the first error of any kind encountered.
func run(source string) (string, error) {
	tokens, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		return "", lexErr
	}
	program, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		return "", parseErr
	}
	host := &fakeHost{}
	ev := evaluator.New(host)
	_, evalErr := ev.Eval(program, object.NewContext("<test>", nil))
	if evalErr != nil {
		return host.out.String(), evalErr
	}
	return host.out.String(), nil
}

// ----------------------------------------------------------------------------
// Concrete end-to-end scenarios
// ----------------------------------------------------------------------------

func TestScenario1_HelloWorld(t *testing.T) {
	out, err := run("HAI 1.2\nVISIBLE \"hi\"\nKTHXBYE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hi\n" {
		t.Errorf("got %q, want %q", out, "hi\n")
	}
}

func TestScenario2_SumOfTwoVariables(t *testing.T) {
	out, err := run("HAI\nI HAS A x ITZ 3\nI HAS A y ITZ 4\nVISIBLE SUM OF x AN y\nKTHXBYE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "7\n" {
		t.Errorf("got %q, want %q", out, "7\n")
	}
}

func TestScenario3_SwitchOnVariableWithGtfo(t *testing.T) {
	source := "HAI\nI HAS A x ITZ 2\nx, WTF?\n OMG 1\n  VISIBLE \"one\"\n  GTFO\n OMG 2\n  VISIBLE \"two\"\n  GTFO\n OMGWTF\n  VISIBLE \"other\"\nOIC\nKTHXBYE"
	out, err := run(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "two\n" {
		t.Errorf("got %q, want %q", out, "two\n")
	}
}

func TestScenario4_LoopCounting(t *testing.T) {
	source := "HAI\nI HAS A i ITZ 0\nIM IN YR lp UPPIN YR i TIL BOTH SAEM i AN 3\n VISIBLE i\nIM OUTTA YR lp\nKTHXBYE"
	out, err := run(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "0\n1\n2\n" {
		t.Errorf("got %q, want %q", out, "0\n1\n2\n")
	}
}

func TestScenario5_FunctionReturn(t *testing.T) {
	source := "HAI\nHOW IZ I sq YR n\n FOUND YR PRODUKT OF n AN n\nIF U SAY SO\nVISIBLE I IZ sq YR 5 MKAY\nKTHXBYE"
	out, err := run(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "25\n" {
		t.Errorf("got %q, want %q", out, "25\n")
	}
}

func TestScenario6_NonNumericComparisonErrors(t *testing.T) {
	source := "HAI\nVISIBLE BOTH SAEM \"a\" AN \"a\"\nKTHXBYE"
	_, err := run(source)
	if err == nil {
		t.Fatal("expected a runtime error comparing two YARNs, got none")
	}
}

// ----------------------------------------------------------------------------
// Named invariants
// ----------------------------------------------------------------------------

func TestInvariant_LoopRunsExactlyNTimesAndLeavesCounterAtN(t *testing.T) {
	source := `HAI
I HAS A i ITZ 0
I HAS A hits ITZ 0
IM IN YR x UPPIN YR i TIL BOTH SAEM i AN 5
	hits R SUM OF hits AN 1
IM OUTTA YR x
VISIBLE hits
VISIBLE i
KTHXBYE`
	out, err := run(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "5\n5\n" {
		t.Errorf("got %q, want hits=5 then i=5", out)
	}
}

func TestInvariant_ClosureReadsLatestOuterValue(t *testing.T) {
	source := `HAI
I HAS A counter ITZ 1
HOW IZ I READCOUNTER
	FOUND YR counter
IF U SAY SO
counter R 42
VISIBLE I IZ READCOUNTER MKAY
KTHXBYE`
	out, err := run(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "42\n" {
		t.Errorf("closure did not observe the latest assignment: got %q", out)
	}
}

func TestInvariant_GtfoOutsideAnyBlockIsSyntaxError(t *testing.T) {
	source := "HAI\nGTFO\nKTHXBYE"
	_, err := run(source)
	if err == nil {
		t.Fatal("expected a syntax error for GTFO outside any loop/switch/function")
	}
}

func TestInvariant_GtfoInsideFunctionReturnsNoobToCaller(t *testing.T) {
	source := `HAI
HOW IZ I BAILOUT
	GTFO
IF U SAY SO
I IZ BAILOUT MKAY
KTHXBYE`
	if _, err := run(source); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInvariant_ArrayWriteAtLengthAppendsElsewhereErrors(t *testing.T) {
	appendSource := `HAI
I HAS A NUMS ITZ A NUMBR UHS OF 1
CONFINE 7 IN NUMS AT 0
VISIBLE NUMS[0]
KTHXBYE`
	out, err := run(appendSource)
	if err != nil {
		t.Fatalf("unexpected error writing within capacity: %v", err)
	}
	if out != "7\n" {
		t.Errorf("got %q, want %q", out, "7\n")
	}

	outOfRangeSource := `HAI
I HAS A NUMS ITZ A NUMBR UHS OF 1
CONFINE 7 IN NUMS AT 5
KTHXBYE`
	if _, err := run(outOfRangeSource); err == nil {
		t.Fatal("expected a runtime error writing past capacity")
	}
}

func TestInvariant_EqualityLawNumericOnly(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"HAI\nVISIBLE BOTH SAEM 3 AN 3\nKTHXBYE", "WIN\n"},
		{"HAI\nVISIBLE BOTH SAEM 3 AN 4\nKTHXBYE", "FAIL\n"},
		{"HAI\nVISIBLE DIFFRINT 3 AN 4\nKTHXBYE", "WIN\n"},
		{"HAI\nVISIBLE DIFFRINT 3 AN 3\nKTHXBYE", "FAIL\n"},
	}
	for _, tt := range tests {
		out, err := run(tt.source)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.source, err)
		}
		if out != tt.want {
			t.Errorf("%q: got %q, want %q", tt.source, out, tt.want)
		}
	}
}
