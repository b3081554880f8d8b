// ==============================================================================================
// FILE: repl/repl_benchmark_test.go
// ==============================================================================================
// PURPOSE: Performance benchmarks for the REPL loop. Measures startup
//          overhead and per-line processing cost.
// ==============================================================================================

package repl

import (
	"bytes"
	"strings"
	"testing"
)

// BenchmarkREPL_StartupAndExit measures the cost of initializing a session.
func BenchmarkREPL_StartupAndExit(b *testing.B) {
	input := ".exit"
	for i := 0; i < b.N; i++ {
		in := strings.NewReader(input)
		var out bytes.Buffer
		Start(in, &out)
	}
}

// BenchmarkREPL_Calculation measures throughput for a simple arithmetic line.
func BenchmarkREPL_Calculation(b *testing.B) {
	input := "PRODUKT OF SUM OF 10 AN 5 AN 2\n.exit"
	for i := 0; i < b.N; i++ {
		in := strings.NewReader(input)
		var out bytes.Buffer
		Start(in, &out)
	}
}
