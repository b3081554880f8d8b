// ==============================================================================================
// FILE: evaluator/evaluator_unit_test.go
// ==============================================================================================
// PURPOSE: Unit tests for individual evaluation rules: arithmetic,
//          boolean, comparison, concatenation, and typecasting.
//          Also holds the shared helpers (fakeHost, runProgram, wrap,
//          require*) used across this package.
// ==============================================================================================

package evaluator

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lolcode/lexer"
	"lolcode/object"
	"lolcode/parser"
)

// ----------------------------------------------------------------------------
// TEST HELPERS (shared across this package)
// ----------------------------------------------------------------------------

// fakeHost is a Host that buffers VISIBLE output and replays scripted
// GIMMEH input lines.
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

// runProgram tokenizes, parses, and evaluates a full program, failing the
// test immediately on a lex or parse error.
func runProgram(t *testing.T, source string, inputLines ...string) (object.Value, *fakeHost) {
	t.Helper()
	tokens, lexErr := lexer.Tokenize(source)
	require.Nil(t, lexErr, "lex error: %+v", lexErr)

	program, parseErr := parser.Parse(tokens)
	require.Nil(t, parseErr, "parse error: %+v", parseErr)

	host := &fakeHost{lines: inputLines}
	ctx := object.NewContext("<global>", nil)
	ev := New(host)

	val, evalErr := ev.Eval(program, ctx)
	require.Nil(t, evalErr, "eval error: %+v", evalErr)
	return val, host
}

func wrap(body string) string {
	return "HAI 1.2\n" + body + "\nKTHXBYE\n"
}

func requireInt(t *testing.T, v object.Value, want int64) {
	t.Helper()
	i, ok := v.(*object.Int)
	require.True(t, ok, "expected *object.Int, got %T (%v)", v, v)
	require.Equal(t, want, i.Value)
}

func requireFlt(t *testing.T, v object.Value, want float64) {
	t.Helper()
	f, ok := v.(*object.Flt)
	require.True(t, ok, "expected *object.Flt, got %T (%v)", v, v)
	require.InDelta(t, want, f.Value, 1e-9)
}

func requireBool(t *testing.T, v object.Value, want bool) {
	t.Helper()
	b, ok := v.(*object.Bool)
	require.True(t, ok, "expected *object.Bool, got %T (%v)", v, v)
	require.Equal(t, want, b.Value)
}

func requireStr(t *testing.T, v object.Value, want string) {
	t.Helper()
	s, ok := v.(*object.Str)
	require.True(t, ok, "expected *object.Str, got %T (%v)", v, v)
	require.Equal(t, want, s.Value)
}

// ----------------------------------------------------------------------------
// Arithmetic
// ----------------------------------------------------------------------------

func TestArithmeticIntegerOps(t *testing.T) {
	tests := []struct {
		expr string
		want int64
	}{
		{"SUM OF 2 AN 3", 5},
		{"DIFF OF 10 AN 4", 6},
		{"PRODUKT OF 3 AN 4", 12},
		{"MOD OF 10 AN 3", 1},
	}
	for _, tt := range tests {
		val, _ := runProgram(t, wrap("I HAS A X ITZ "+tt.expr))
		requireInt(t, val, tt.want)
	}
}

func TestArithmeticQuoshuntAlwaysFloats(t *testing.T) {
	val, _ := runProgram(t, wrap("I HAS A X ITZ QUOSHUNT OF 10 AN 4"))
	requireFlt(t, val, 2.5)
}

func TestArithmeticMixedIntFloatPromotes(t *testing.T) {
	val, _ := runProgram(t, wrap("I HAS A X ITZ SUM OF 2 AN 1.5"))
	requireFlt(t, val, 3.5)
}

func TestArithmeticModByZeroErrors(t *testing.T) {
	tokens, lexErr := lexer.Tokenize(wrap("I HAS A X ITZ MOD OF 10 AN 0"))
	require.Nil(t, lexErr)
	program, parseErr := parser.Parse(tokens)
	require.Nil(t, parseErr)

	ev := New(&fakeHost{})
	_, err := ev.Eval(program, object.NewContext("<global>", nil))
	require.NotNil(t, err)
}

func TestBiggrSmallrNumeric(t *testing.T) {
	val, _ := runProgram(t, wrap("I HAS A X ITZ BIGGR OF 3 AN 7"))
	requireInt(t, val, 7)

	val, _ = runProgram(t, wrap("I HAS A X ITZ SMALLR OF 3 AN 7"))
	requireInt(t, val, 3)
}

// ----------------------------------------------------------------------------
// Boolean
// ----------------------------------------------------------------------------

func TestBooleanBinaryOps(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"BOTH OF WIN AN WIN", true},
		{"BOTH OF WIN AN FAIL", false},
		{"EITHER OF FAIL AN WIN", true},
		{"WON OF WIN AN WIN", false},
		{"WON OF WIN AN FAIL", true},
	}
	for _, tt := range tests {
		val, _ := runProgram(t, wrap("I HAS A X ITZ "+tt.expr))
		requireBool(t, val, tt.want)
	}
}

func TestNotUnaryOp(t *testing.T) {
	val, _ := runProgram(t, wrap("I HAS A X ITZ NOT WIN"))
	requireBool(t, val, false)
}

func TestAllOfAnyOfVariadic(t *testing.T) {
	val, _ := runProgram(t, wrap("I HAS A X ITZ ALL OF WIN AN WIN AN WIN MKAY"))
	requireBool(t, val, true)

	val, _ = runProgram(t, wrap("I HAS A X ITZ ALL OF WIN AN FAIL MKAY"))
	requireBool(t, val, false)

	val, _ = runProgram(t, wrap("I HAS A X ITZ ANY OF FAIL AN FAIL AN WIN MKAY"))
	requireBool(t, val, true)
}

// ----------------------------------------------------------------------------
// Comparison
// ----------------------------------------------------------------------------

func TestBothSaemDiffrintNumeric(t *testing.T) {
	val, _ := runProgram(t, wrap("I HAS A X ITZ BOTH SAEM 3 AN 3"))
	requireBool(t, val, true)

	val, _ = runProgram(t, wrap("I HAS A X ITZ DIFFRINT 3 AN 4"))
	requireBool(t, val, true)
}

func TestBothSaemNonNumericErrors(t *testing.T) {
	tokens, lexErr := lexer.Tokenize(wrap(`I HAS A X ITZ BOTH SAEM "cat" AN "dog"`))
	require.Nil(t, lexErr)
	program, parseErr := parser.Parse(tokens)
	require.Nil(t, parseErr)

	ev := New(&fakeHost{})
	_, err := ev.Eval(program, object.NewContext("<global>", nil))
	require.NotNil(t, err)
}

// ----------------------------------------------------------------------------
// Concatenation / typecast
// ----------------------------------------------------------------------------

func TestSmooshConcatenatesWithCoercion(t *testing.T) {
	val, _ := runProgram(t, wrap(`I HAS A X ITZ SMOOSH "cats: " AN 3 AN " WIN" MKAY`))
	requireStr(t, val, "cats: 3 WIN")
}

func TestTypecastNumbrToYarn(t *testing.T) {
	val, _ := runProgram(t, wrap("I HAS A X ITZ MAEK 5 A YARN"))
	requireStr(t, val, "5")
}

func TestTypecastYarnToNumbr(t *testing.T) {
	val, _ := runProgram(t, wrap(`I HAS A X ITZ MAEK "42" A NUMBR`))
	requireInt(t, val, 42)
}
