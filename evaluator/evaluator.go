// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Implements the runtime execution engine. It walks the AST and
//          produces side effects (I/O, via a Host) or results (Values).
//          It handles variable scoping, control flow, and error propagation.
// ==============================================================================================

package evaluator

import (
	"fmt"
	"strings"

	"lolcode/ast"
	"lolcode/lolerr"
	"lolcode/object"
)

// Host isolates every point where the interpreter can block or touch the
// outside world: VISIBLE writes through Write, GIMMEH blocks on ReadLine.
// No other code in this package touches standard streams directly.
type Host interface {
	Write(text string)
	ReadLine() (string, error)
}

// SymbolSink is the embedding contract's optional on_symbols debug hook.
// A Host may implement it or not; Evaluator type-asserts for it rather
// than requiring every embedder to stub a no-op.
type SymbolSink interface {
	OnSymbols(ctx *object.Context)
}

// Evaluator walks the AST against a single Host.
type Evaluator struct {
	Host Host
}

// New builds an Evaluator bound to host.
func New(host Host) *Evaluator {
	return &Evaluator{Host: host}
}

// Eval dispatches on node's dynamic type and returns its result value,
// or a *lolerr.Error the moment any subexpression fails. Nothing in this
// tree walker panics or relies on exceptions for control flow.
func (e *Evaluator) Eval(node ast.Node, ctx *object.Context) (object.Value, *lolerr.Error) {
	switch n := node.(type) {

	// --- Root / containers ---
	case *ast.Program:
		return e.evalProgram(n, ctx)
	case *ast.StmtList:
		return e.evalStmtList(n, ctx)
	case *ast.VarDeclList:
		return e.evalVarDeclList(n, ctx)

	// --- Statements ---
	case *ast.VarDecl:
		return e.evalVarDecl(n, ctx)
	case *ast.VarAssign:
		return e.evalVarAssign(n, ctx)
	case *ast.ExprStmt:
		return e.Eval(n.Expr, ctx)
	case *ast.Print:
		return e.evalPrint(n, ctx)
	case *ast.Input:
		return e.evalInput(n, ctx)
	case *ast.If:
		return e.evalIf(n, ctx)
	case *ast.Switch:
		return e.evalSwitch(n, ctx)
	case *ast.Loop:
		return e.evalLoop(n, ctx)
	case *ast.FuncDef:
		return e.evalFuncDef(n, ctx)
	case *ast.Break:
		return &object.Break{}, nil
	case *ast.Return:
		val, err := e.Eval(n.Expr, ctx)
		if err != nil {
			return nil, err
		}
		return &object.Return{Value: val}, nil
	case *ast.ArrayDecl:
		// Only reachable if an array literal were used outside a VarDecl's
		// Init slot, which the grammar never produces.
		return nil, lolerr.NewRuntime(n.Line(), 0, "Array declarations must initialize a variable.")
	case *ast.ArrayConfine:
		return e.evalArrayConfine(n, ctx)
	case *ast.ArrayDischarge:
		return e.evalArrayDischarge(n, ctx)

	// --- Expressions ---
	case *ast.IntLit:
		return &object.Int{Value: n.Value}, nil
	case *ast.FloatLit:
		return &object.Flt{Value: n.Value}, nil
	case *ast.BoolLit:
		return object.NewBool(n.Value), nil
	case *ast.StringLit:
		return &object.Str{Value: n.Value}, nil
	case *ast.NoobLit:
		return object.TheNoob, nil
	case *ast.VarRef:
		return e.evalVarRef(n, ctx)
	case *ast.ArithBinOp:
		return e.evalArithBinOp(n, ctx)
	case *ast.BoolBinOp:
		return e.evalBoolBinOp(n, ctx)
	case *ast.BoolUnOp:
		return e.evalBoolUnOp(n, ctx)
	case *ast.BoolVariadic:
		return e.evalBoolVariadic(n, ctx)
	case *ast.Compare:
		return e.evalCompare(n, ctx)
	case *ast.StrConcat:
		return e.evalStrConcat(n, ctx)
	case *ast.Typecast:
		return e.evalTypecast(n, ctx)
	case *ast.FuncCall:
		return e.evalFuncCall(n, ctx)
	case *ast.ArrayAccess:
		return e.evalArrayAccess(n, ctx)
	}

	return nil, lolerr.NewRuntime(node.Line(), 0, fmt.Sprintf("no evaluator rule for %T", node))
}

// evalProgram registers every hoisted function before running anything
// else, so a function defined after KTHXBYE can still be called from the
// body.
func (e *Evaluator) evalProgram(n *ast.Program, ctx *object.Context) (object.Value, *lolerr.Error) {
	for _, fn := range n.Functions {
		if _, err := e.evalFuncDef(fn, ctx); err != nil {
			return nil, err
		}
	}
	if n.VarSec != nil {
		if _, err := e.evalVarDeclList(n.VarSec, ctx); err != nil {
			return nil, err
		}
	}
	result, err := e.evalStmtList(n.Body, ctx)
	if err != nil {
		return nil, err
	}
	if sink, ok := e.Host.(SymbolSink); ok {
		sink.OnSymbols(ctx)
	}
	return result, nil
}

func (e *Evaluator) evalVarDeclList(n *ast.VarDeclList, ctx *object.Context) (object.Value, *lolerr.Error) {
	var last object.Value = object.TheNoob
	for _, decl := range n.Decls {
		val, err := e.evalVarDecl(decl, ctx)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

// evalStmtList runs each statement in order, updating IT after every one
// except VISIBLE: printing is observation, not computation, so it must
// not overwrite the implicit result. Break/Return sentinels stop the
// list immediately and propagate to the caller unexamined.
func (e *Evaluator) evalStmtList(n *ast.StmtList, ctx *object.Context) (object.Value, *lolerr.Error) {
	var last object.Value = object.TheNoob
	for _, stmt := range n.Stmts {
		val, err := e.Eval(stmt, ctx)
		if err != nil {
			return nil, err
		}
		switch val.(type) {
		case *object.Break, *object.Return:
			return val, nil
		}
		if _, isPrint := stmt.(*ast.Print); !isPrint {
			ctx.Symbols.SetIT(val)
		}
		last = val
	}
	return last, nil
}

func (e *Evaluator) evalVarDecl(n *ast.VarDecl, ctx *object.Context) (object.Value, *lolerr.Error) {
	if n.Init == nil {
		ctx.Symbols.Declare(n.Name, object.TheNoob)
		return object.TheNoob, nil
	}
	if arrInit, ok := n.Init.(*ast.ArrayDecl); ok {
		arr, err := e.buildArray(arrInit, ctx)
		if err != nil {
			return nil, err
		}
		ctx.Symbols.Declare(n.Name, arr)
		return arr, nil
	}
	val, err := e.Eval(n.Init, ctx)
	if err != nil {
		return nil, err
	}
	ctx.Symbols.Declare(n.Name, val)
	return val, nil
}

func (e *Evaluator) buildArray(n *ast.ArrayDecl, ctx *object.Context) (*object.Array, *lolerr.Error) {
	sizeVal, err := e.Eval(n.Size, ctx)
	if err != nil {
		return nil, err
	}
	size, err := e.coerceIndex(n.Size.Line(), sizeVal)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, lolerr.NewRuntime(n.Line(), 0, "Array capacity cannot be negative.")
	}
	return object.NewArray(object.TypeTag(n.ElemType), size), nil
}

// evalVarAssign implements `set`: the name must already be declared
// somewhere in the scope chain, and the write lands in the nearest scope
// that already defines it.
func (e *Evaluator) evalVarAssign(n *ast.VarAssign, ctx *object.Context) (object.Value, *lolerr.Error) {
	val, err := e.Eval(n.Expr, ctx)
	if err != nil {
		return nil, err
	}
	if !ctx.Symbols.Found(n.Name) {
		return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf("'%s' is not defined.", n.Name)).WithAt(n.Name)
	}
	ctx.Symbols.Set(n.Name, val)
	return val, nil
}

func (e *Evaluator) evalVarRef(n *ast.VarRef, ctx *object.Context) (object.Value, *lolerr.Error) {
	val, ok := ctx.Symbols.Get(n.Name)
	if !ok {
		return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf("'%s' is not defined.", n.Name)).WithAt(n.Name)
	}
	return val, nil
}

// evalPrint coerces every operand to YARN through the implicit coercion
// matrix before concatenating, so a NUMBAR operand prints with the
// two-decimal formatting rule rather than a raw float representation. No
// delimiter is inserted between operands.
func (e *Evaluator) evalPrint(n *ast.Print, ctx *object.Context) (object.Value, *lolerr.Error) {
	var sb strings.Builder
	for _, operand := range n.Operands {
		val, err := e.Eval(operand, ctx)
		if err != nil {
			return nil, err
		}
		str, err := object.CoerceImplicit(operand.Line(), val, object.YARN)
		if err != nil {
			return nil, err
		}
		sb.WriteString(str.(*object.Str).Value)
	}
	text := sb.String()
	out := text
	if !n.SuppressNewline {
		out += "\n"
	}
	e.Host.Write(out)
	return &object.Str{Value: text}, nil
}

func (e *Evaluator) evalInput(n *ast.Input, ctx *object.Context) (object.Value, *lolerr.Error) {
	if !ctx.Symbols.Found(n.VarName) {
		return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf("'%s' is not defined.", n.VarName)).WithAt(n.VarName)
	}
	line, ioErr := e.Host.ReadLine()
	if ioErr != nil {
		return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf("Failed to read input: %s", ioErr))
	}
	val := &object.Str{Value: line}
	ctx.Symbols.Set(n.VarName, val)
	return val, nil
}

// evalIf implements O RLY?/YA RLY/MEBBE/NO WAI. Every MEBBE clause's own
// condition is evaluated in source order until one matches, falling
// through to NO WAI (if present) when none do.
func (e *Evaluator) evalIf(n *ast.If, ctx *object.Context) (object.Value, *lolerr.Error) {
	basis := ctx.Symbols.GetIT()
	cond, err := object.CoerceImplicit(n.Line(), basis, object.TROOF)
	if err != nil {
		return nil, err
	}
	if cond.(*object.Bool).Value {
		return e.evalStmtList(n.ThenStmts, ctx)
	}

	for _, mebbe := range n.Mebbe {
		mv, err := e.Eval(mebbe.Cond, ctx)
		if err != nil {
			return nil, err
		}
		mb, err := object.CoerceImplicit(mebbe.Cond.Line(), mv, object.TROOF)
		if err != nil {
			return nil, err
		}
		if mb.(*object.Bool).Value {
			return e.evalStmtList(mebbe.Stmts, ctx)
		}
	}

	if n.ElseStmts != nil {
		return e.evalStmtList(n.ElseStmts, ctx)
	}
	return basis, nil
}

// evalSwitch matches IT against each OMG label in order using SwitchEquals
// (same-type equality, no coercion error on a type mismatch) and runs
// only the matched case's own statements; there is no fallthrough to the
// next case once one matches.
func (e *Evaluator) evalSwitch(n *ast.Switch, ctx *object.Context) (object.Value, *lolerr.Error) {
	basis := ctx.Symbols.GetIT()

	for _, c := range n.Cases {
		label, err := e.Eval(c.Literal, ctx)
		if err != nil {
			return nil, err
		}
		if !object.SwitchEquals(basis, label) {
			continue
		}
		result, err := e.evalStmtList(c.Stmts, ctx)
		if err != nil {
			return nil, err
		}
		if ret, ok := result.(*object.Return); ok {
			return ret, nil
		}
		return basis, nil
	}

	if n.DefaultStmt != nil {
		result, err := e.evalStmtList(n.DefaultStmt, ctx)
		if err != nil {
			return nil, err
		}
		if ret, ok := result.(*object.Return); ok {
			return ret, nil
		}
	}
	return basis, nil
}

// evalLoop runs IM IN YR: the guard (if any) is checked before every
// iteration, the body runs, GTFO stops the loop, FOUND YR unwinds through
// it, and the loop variable steps by UPPIN/NERFIN after each iteration.
func (e *Evaluator) evalLoop(n *ast.Loop, ctx *object.Context) (object.Value, *lolerr.Error) {
	for {
		if n.Guard != ast.GuardNone {
			guardVal, err := e.Eval(n.GuardExpr, ctx)
			if err != nil {
				return nil, err
			}
			guardBool, err := object.CoerceImplicit(n.GuardExpr.Line(), guardVal, object.TROOF)
			if err != nil {
				return nil, err
			}
			done := guardBool.(*object.Bool).Value
			if n.Guard == ast.GuardTil && done {
				break
			}
			if n.Guard == ast.GuardWile && !done {
				break
			}
		}

		result, err := e.evalStmtList(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		if ret, ok := result.(*object.Return); ok {
			return ret, nil
		}
		if _, ok := result.(*object.Break); ok {
			break
		}

		if err := e.stepLoopVar(n, ctx); err != nil {
			return nil, err
		}
	}
	return object.TheNoob, nil
}

func (e *Evaluator) stepLoopVar(n *ast.Loop, ctx *object.Context) *lolerr.Error {
	cur, ok := ctx.Symbols.Get(n.Var)
	if !ok {
		return lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf("'%s' is not defined.", n.Var)).WithAt(n.Var)
	}
	num, err := object.CoerceImplicit(n.Line(), cur, object.NUM)
	if err != nil {
		return err
	}
	delta := int64(1)
	if n.Op == ast.LoopNerfin {
		delta = -1
	}
	switch v := num.(type) {
	case *object.Int:
		ctx.Symbols.Set(n.Var, &object.Int{Value: v.Value + delta})
	case *object.Flt:
		ctx.Symbols.Set(n.Var, &object.Flt{Value: v.Value + float64(delta)})
	}
	return nil
}

func (e *Evaluator) evalFuncDef(n *ast.FuncDef, ctx *object.Context) (object.Value, *lolerr.Error) {
	fn := &object.Function{Name: n.Name, Params: n.Params, Body: n.Body, Captured: ctx}
	ctx.Symbols.Declare(n.Name, fn)
	return fn, nil
}

// evalFuncCall resolves the named function, checks arity (too-many and
// too-few arguments get distinct messages), binds each argument into a
// fresh child context of the function's captured (defining) scope, and
// runs the body. FOUND YR unwraps to its value; GTFO inside a function
// body returns NOOB; falling off the end also returns NOOB.
func (e *Evaluator) evalFuncCall(n *ast.FuncCall, ctx *object.Context) (object.Value, *lolerr.Error) {
	val, ok := ctx.Symbols.Get(n.Name)
	if !ok {
		return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf("'%s' is not defined.", n.Name)).WithAt(n.Name)
	}
	fn, ok := val.(*object.Function)
	if !ok {
		return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf("'%s' is not a function.", n.Name)).WithAt(n.Name)
	}

	if len(n.Args) > len(fn.Params) {
		return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf(
			"Too many arguments for function '%s'.\nExpected %d parameter(s), but got %d.\nExtra arguments: %d.",
			fn.Name, len(fn.Params), len(n.Args), len(n.Args)-len(fn.Params)))
	}
	if len(n.Args) < len(fn.Params) {
		return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf(
			"Not enough arguments for function '%s'.\nExpected %d parameter(s), but got %d.\nMissing arguments: %d.",
			fn.Name, len(fn.Params), len(n.Args), len(fn.Params)-len(n.Args)))
	}

	callCtx := object.NewContext(fn.Name, fn.Captured)
	for i, param := range fn.Params {
		argVal, err := e.Eval(n.Args[i], ctx)
		if err != nil {
			return nil, err
		}
		callCtx.Symbols.Declare(param, argVal)
	}

	result, err := e.evalStmtList(fn.Body, callCtx)
	if err != nil {
		return nil, err
	}
	switch v := result.(type) {
	case *object.Return:
		return v.Value, nil
	case *object.Break:
		return object.TheNoob, nil
	}
	return object.TheNoob, nil
}

func (e *Evaluator) evalArrayAccess(n *ast.ArrayAccess, ctx *object.Context) (object.Value, *lolerr.Error) {
	arr, err := e.resolveArray(n.Line(), n.Name, ctx)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.Eval(n.Index, ctx)
	if err != nil {
		return nil, err
	}
	idx, err := e.coerceIndex(n.Index.Line(), idxVal)
	if err != nil {
		return nil, err
	}
	return arr.Access(n.Line(), idx)
}

func (e *Evaluator) evalArrayConfine(n *ast.ArrayConfine, ctx *object.Context) (object.Value, *lolerr.Error) {
	arr, err := e.resolveArray(n.Line(), n.ArrayName, ctx)
	if err != nil {
		return nil, err
	}
	val, err := e.Eval(n.Value, ctx)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.Eval(n.Index, ctx)
	if err != nil {
		return nil, err
	}
	idx, err := e.coerceIndex(n.Index.Line(), idxVal)
	if err != nil {
		return nil, err
	}
	if cerr := arr.Confine(n.Line(), idx, val); cerr != nil {
		return nil, cerr
	}
	return val, nil
}

func (e *Evaluator) evalArrayDischarge(n *ast.ArrayDischarge, ctx *object.Context) (object.Value, *lolerr.Error) {
	arr, err := e.resolveArray(n.Line(), n.ArrayName, ctx)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.Eval(n.Index, ctx)
	if err != nil {
		return nil, err
	}
	idx, err := e.coerceIndex(n.Index.Line(), idxVal)
	if err != nil {
		return nil, err
	}
	return arr.Discharge(n.Line(), idx)
}

func (e *Evaluator) resolveArray(line int, name string, ctx *object.Context) (*object.Array, *lolerr.Error) {
	val, ok := ctx.Symbols.Get(name)
	if !ok {
		return nil, lolerr.NewRuntime(line, 0, fmt.Sprintf("'%s' is not defined.", name)).WithAt(name)
	}
	arr, ok := val.(*object.Array)
	if !ok {
		return nil, lolerr.NewRuntime(line, 0, fmt.Sprintf("'%s' is not an array.", name)).WithAt(name)
	}
	return arr, nil
}

// coerceIndex coerces v to a number and truncates it to an int, matching
// the array grammar's requirement that sizes/indices be numeric.
func (e *Evaluator) coerceIndex(line int, v object.Value) (int, *lolerr.Error) {
	num, err := object.CoerceImplicit(line, v, object.NUM)
	if err != nil {
		return 0, err
	}
	switch n := num.(type) {
	case *object.Int:
		return int(n.Value), nil
	case *object.Flt:
		return int(n.Value), nil
	}
	return 0, lolerr.NewRuntime(line, 0, "Expected a number.")
}

// ----------------------------------------------------------------------------
// Arithmetic / boolean / comparison / concat / typecast
// ----------------------------------------------------------------------------

func (e *Evaluator) evalArithBinOp(n *ast.ArithBinOp, ctx *object.Context) (object.Value, *lolerr.Error) {
	if n.Op == ast.ArithBiggr {
		return e.arithExtremum(n, ctx, true)
	}
	if n.Op == ast.ArithSmallr {
		return e.arithExtremum(n, ctx, false)
	}

	leftVal, err := e.Eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	left, err := object.CoerceImplicit(n.Left.Line(), leftVal, object.NUM)
	if err != nil {
		return nil, err
	}
	rightVal, err := e.Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}
	right, err := object.CoerceImplicit(n.Right.Line(), rightVal, object.NUM)
	if err != nil {
		return nil, err
	}

	li, lIsInt := left.(*object.Int)
	ri, rIsInt := right.(*object.Int)
	if lIsInt && rIsInt && n.Op != ast.ArithQuot {
		return intArith(n.Line(), n.Op, li.Value, ri.Value)
	}
	return fltArith(n.Line(), n.Op, asFloat(left), asFloat(right))
}

func (e *Evaluator) arithExtremum(n *ast.ArithBinOp, ctx *object.Context, wantMax bool) (object.Value, *lolerr.Error) {
	leftVal, err := e.Eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	rightVal, err := e.Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}
	if wantMax {
		return object.Biggr(n.Line(), leftVal, rightVal)
	}
	return object.Smallr(n.Line(), leftVal, rightVal)
}

func asFloat(v object.Value) float64 {
	switch n := v.(type) {
	case *object.Int:
		return float64(n.Value)
	case *object.Flt:
		return n.Value
	}
	return 0
}

func intArith(line int, op ast.ArithOp, a, b int64) (object.Value, *lolerr.Error) {
	switch op {
	case ast.ArithSum:
		return &object.Int{Value: a + b}, nil
	case ast.ArithDiff:
		return &object.Int{Value: a - b}, nil
	case ast.ArithProd:
		return &object.Int{Value: a * b}, nil
	case ast.ArithMod:
		if b == 0 {
			return nil, lolerr.NewRuntime(line, 0, "Cannot compute MOD OF with a zero divisor.")
		}
		return &object.Int{Value: a % b}, nil
	}
	return nil, lolerr.NewRuntime(line, 0, fmt.Sprintf("unhandled arithmetic operator %s", op))
}

func fltArith(line int, op ast.ArithOp, a, b float64) (object.Value, *lolerr.Error) {
	switch op {
	case ast.ArithSum:
		return &object.Flt{Value: a + b}, nil
	case ast.ArithDiff:
		return &object.Flt{Value: a - b}, nil
	case ast.ArithProd:
		return &object.Flt{Value: a * b}, nil
	case ast.ArithQuot:
		if b == 0 {
			return nil, lolerr.NewRuntime(line, 0, "Cannot compute QUOSHUNT OF with a zero divisor.")
		}
		return &object.Flt{Value: a / b}, nil
	case ast.ArithMod:
		if b == 0 {
			return nil, lolerr.NewRuntime(line, 0, "Cannot compute MOD OF with a zero divisor.")
		}
		return &object.Flt{Value: a - b*float64(int64(a/b))}, nil
	}
	return nil, lolerr.NewRuntime(line, 0, fmt.Sprintf("unhandled arithmetic operator %s", op))
}

func (e *Evaluator) evalBoolBinOp(n *ast.BoolBinOp, ctx *object.Context) (object.Value, *lolerr.Error) {
	leftVal, err := e.Eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	left, err := object.CoerceImplicit(n.Left.Line(), leftVal, object.TROOF)
	if err != nil {
		return nil, err
	}
	rightVal, err := e.Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}
	right, err := object.CoerceImplicit(n.Right.Line(), rightVal, object.TROOF)
	if err != nil {
		return nil, err
	}
	lb, rb := left.(*object.Bool).Value, right.(*object.Bool).Value
	switch n.Op {
	case ast.BoolBoth:
		return object.NewBool(lb && rb), nil
	case ast.BoolEither:
		return object.NewBool(lb || rb), nil
	case ast.BoolWon:
		return object.NewBool(lb != rb), nil
	}
	return nil, lolerr.NewRuntime(n.Line(), 0, fmt.Sprintf("unhandled boolean operator %s", n.Op))
}

func (e *Evaluator) evalBoolUnOp(n *ast.BoolUnOp, ctx *object.Context) (object.Value, *lolerr.Error) {
	val, err := e.Eval(n.Operand, ctx)
	if err != nil {
		return nil, err
	}
	b, err := object.CoerceImplicit(n.Operand.Line(), val, object.TROOF)
	if err != nil {
		return nil, err
	}
	return object.NewBool(!b.(*object.Bool).Value), nil
}

func (e *Evaluator) evalBoolVariadic(n *ast.BoolVariadic, ctx *object.Context) (object.Value, *lolerr.Error) {
	wantAll := n.Op == ast.VariadicAll
	for _, operand := range n.Operands {
		val, err := e.Eval(operand, ctx)
		if err != nil {
			return nil, err
		}
		b, err := object.CoerceImplicit(operand.Line(), val, object.TROOF)
		if err != nil {
			return nil, err
		}
		truth := b.(*object.Bool).Value
		if wantAll && !truth {
			return object.NewBool(false), nil
		}
		if !wantAll && truth {
			return object.NewBool(true), nil
		}
	}
	return object.NewBool(wantAll), nil
}

// evalCompare implements BOTH SAEM/DIFFRINT using NumEquals's strict
// numeric rule: both operands must already be numeric, with no implicit
// coercion attempted first.
func (e *Evaluator) evalCompare(n *ast.Compare, ctx *object.Context) (object.Value, *lolerr.Error) {
	leftVal, err := e.Eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	rightVal, err := e.Eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}
	eq, numErr := object.NumEquals(n.Line(), leftVal, rightVal)
	if numErr != nil {
		return nil, numErr
	}
	if n.Op == ast.CompareDiff {
		eq = !eq
	}
	return object.NewBool(eq), nil
}

// evalStrConcat coerces every operand to YARN through the implicit
// coercion matrix before joining with no delimiter.
func (e *Evaluator) evalStrConcat(n *ast.StrConcat, ctx *object.Context) (object.Value, *lolerr.Error) {
	var sb strings.Builder
	for _, operand := range n.Operands {
		val, err := e.Eval(operand, ctx)
		if err != nil {
			return nil, err
		}
		str, err := object.CoerceImplicit(operand.Line(), val, object.YARN)
		if err != nil {
			return nil, err
		}
		sb.WriteString(str.(*object.Str).Value)
	}
	return &object.Str{Value: sb.String()}, nil
}

// evalTypecast implements MAEK/IS NOW A. Every target dispatches through
// CoerceExplicit directly.
func (e *Evaluator) evalTypecast(n *ast.Typecast, ctx *object.Context) (object.Value, *lolerr.Error) {
	val, err := e.Eval(n.Expr, ctx)
	if err != nil {
		return nil, err
	}
	target := object.TypeTag(n.TargetType)
	_, wasFloat := val.(*object.Flt)
	return object.CoerceExplicit(n.Line(), val, target, wasFloat)
}
