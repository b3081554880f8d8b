// ==============================================================================================
// FILE: evaluator/evaluator_benchmark_test.go
// ==============================================================================================
// PURPOSE: Benchmarks for the hot loop/arithmetic path, run separately from
//          the lex/parse cost via pre-parsed programs.
// ==============================================================================================

package evaluator

import (
	"testing"

	"lolcode/lexer"
	"lolcode/object"
	"lolcode/parser"
)

func BenchmarkLoopCountdown(b *testing.B) {
	source := wrap(`
I HAS A I ITZ 0
I HAS A SUM ITZ 0
IM IN YR LOOP UPPIN YR I TIL BOTH SAEM I AN 1000
	SUM R SUM OF SUM AN I
IM OUTTA YR LOOP
SUM
`)
	tokens, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		b.Fatalf("lex error: %+v", lexErr)
	}
	program, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		b.Fatalf("parse error: %+v", parseErr)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ev := New(&fakeHost{})
		if _, err := ev.Eval(program, object.NewContext("<global>", nil)); err != nil {
			b.Fatalf("eval error: %+v", err)
		}
	}
}

func BenchmarkFunctionCallRecursionFree(b *testing.B) {
	source := wrap(`
HOW IZ I SQUARE YR N
	FOUND YR PRODUKT OF N AN N
IF U SAY SO
I IZ SQUARE YR 7 MKAY
`)
	tokens, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		b.Fatalf("lex error: %+v", lexErr)
	}
	program, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		b.Fatalf("parse error: %+v", parseErr)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ev := New(&fakeHost{})
		if _, err := ev.Eval(program, object.NewContext("<global>", nil)); err != nil {
			b.Fatalf("eval error: %+v", err)
		}
	}
}
