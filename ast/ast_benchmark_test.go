// ==============================================================================================
// FILE: ast/ast_benchmark_test.go
// ==============================================================================================
// PURPOSE: Performance benchmarks for AST String() methods, which involve
//          recursive tree traversal and string concatenation, used by
//          --dump-ast and the REPL's AST panel.
// ==============================================================================================

package ast

import "testing"

func BenchmarkArithBinOpString(b *testing.B) {
	expr := NewArithBinOp(1, ArithSum, NewIntLit(1, 100), NewIntLit(1, 200))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = expr.String()
	}
}

// Simulates the overhead of --dump-ast on a moderately sized source file.
func BenchmarkLargeProgramString(b *testing.B) {
	count := 1000
	stmts := make([]Stmt, count)
	for i := range stmts {
		stmts[i] = NewPrint(1, []Expr{NewIntLit(1, 1)}, false)
	}
	prog := NewProgram(1, nil, nil, NewStmtList(1, stmts))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = prog.String()
	}
}
