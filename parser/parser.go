// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Recursive-descent parser for LOLCODE. The grammar is fully
//          keyword-prefixed, so no precedence climbing is needed; one
//          token of lookahead disambiguates every production. Converts a
//          token stream into a *ast.Program, or returns a *lolerr.Error at
//          the first failure (no error recovery).
// ==============================================================================================

package parser

import (
	"fmt"
	"strconv"

	"lolcode/ast"
	"lolcode/lolerr"
	"lolcode/token"
)

// Parser holds the token stream and two diagnostic stacks: a parse-context
// stack snapshotted into every syntax error, and a control-flow stack used
// to validate GTFO/FOUND YR placement.
type Parser struct {
	tokens []token.Token
	pos    int
	cur    token.Token

	ctxStack []lolerr.Frame
	cfStack  []string // tags: "loop", "switch", "function"
}

// New builds a parser over an already-lexed token stream.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) > 0 {
		p.cur = tokens[0]
	} else {
		p.cur = token.Token{Kind: token.EOF}
	}
	return p
}

// Parse runs the top-level Program production.
func Parse(tokens []token.Token) (*ast.Program, *lolerr.Error) {
	return New(tokens).parseProgram()
}

// ----------------------------------------------------------------------------
// Token-stream plumbing
// ----------------------------------------------------------------------------

func (p *Parser) advance() {
	p.pos++
	if p.pos < len(p.tokens) {
		p.cur = p.tokens[p.pos]
		return
	}
	line, col := 0, 0
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		line, col = last.Line, last.Col+len(last.Lexeme)
	}
	p.cur = token.Token{Kind: token.EOF, Lexeme: "", Line: line, Col: col}
}

func (p *Parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx < 0 || idx >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) push(name string) {
	p.ctxStack = append(p.ctxStack, lolerr.Frame{Function: name, Line: p.cur.Line, Col: p.cur.Col})
}

func (p *Parser) pop() {
	p.ctxStack = p.ctxStack[:len(p.ctxStack)-1]
}

func (p *Parser) pushCF(tag string) { p.cfStack = append(p.cfStack, tag) }
func (p *Parser) popCF()            { p.cfStack = p.cfStack[:len(p.cfStack)-1] }

func (p *Parser) inAny(tags ...string) bool {
	for _, have := range p.cfStack {
		for _, want := range tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// foundDesc renders p.cur for an "expected X, found Y" message.
func (p *Parser) foundDesc() string {
	if p.cur.Kind == token.EOF {
		return "end of input"
	}
	return p.cur.Lexeme
}

func (p *Parser) syntaxErr(category, expected string) *lolerr.Error {
	found := p.foundDesc()
	return lolerr.NewSyntax(p.cur.Line, p.cur.Col, fmt.Sprintf("expected %s, found '%s'", expected, found)).
		WithExpectedFound(expected, found).
		WithCategory(category).
		WithStack(p.ctxStack)
}

// expect checks the current token's kind, advances past it on success, or
// returns a syntax error (carrying category/expected) on mismatch.
func (p *Parser) expect(kind token.Kind, category, expected string) *lolerr.Error {
	if p.cur.Kind != kind {
		return p.syntaxErr(category, expected)
	}
	p.advance()
	return nil
}

var typeKeywords = map[token.Kind]bool{
	token.NOOB: true, token.TROOF: true, token.NUMBR: true, token.NUMBAR: true, token.YARN: true,
}

// ----------------------------------------------------------------------------
// Program / variable section
// ----------------------------------------------------------------------------

func (p *Parser) parseProgram() (*ast.Program, *lolerr.Error) {
	p.push("parseProgram")
	defer p.pop()

	line := p.cur.Line
	var functions []*ast.FuncDef
	for p.cur.Kind == token.NEWLINE {
		p.advance()
	}
	for p.cur.Kind == token.HOW_IZ_I {
		fn, err := p.parseFuncDef()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
		for p.cur.Kind == token.NEWLINE {
			p.advance()
		}
	}

	if err := p.expect(token.HAI, "Program", "'HAI'"); err != nil {
		return nil, err
	}

	// Optional version literal immediately after HAI.
	if p.cur.Kind == token.FLOAT || p.cur.Kind == token.INTEGER {
		p.advance()
	}
	for p.cur.Kind == token.NEWLINE {
		p.advance()
	}

	var varSec *ast.VarDeclList
	if p.cur.Kind == token.WAZZUP {
		p.advance()
		sec, err := p.parseVarSection()
		if err != nil {
			return nil, err
		}
		varSec = sec
	}

	body, err := p.parseStmtList(token.KTHXBYE)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.KTHXBYE, "Program", "'KTHXBYE'"); err != nil {
		return nil, err
	}
	for p.cur.Kind == token.NEWLINE {
		p.advance()
	}

	for p.cur.Kind == token.HOW_IZ_I {
		fn, err := p.parseFuncDef()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
		for p.cur.Kind == token.NEWLINE {
			p.advance()
		}
	}

	return ast.NewProgram(line, functions, varSec, body), nil
}

func (p *Parser) parseVarSection() (*ast.VarDeclList, *lolerr.Error) {
	p.push("parseVarSection")
	defer p.pop()

	line := p.cur.Line
	var decls []*ast.VarDecl
	for p.cur.Kind == token.NEWLINE {
		p.advance()
	}
	for p.cur.Kind != token.BUHBYE {
		if p.cur.Kind == token.EOF {
			return nil, p.syntaxErr("Variable List", "'BUHBYE'")
		}
		d, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
		for p.cur.Kind == token.NEWLINE || p.cur.Kind == token.COMMA {
			p.advance()
		}
	}
	if err := p.expect(token.BUHBYE, "Variable List", "'BUHBYE'"); err != nil {
		return nil, err
	}
	return ast.NewVarDeclList(line, decls), nil
}

// parseVarDecl handles I HAS A name [ITZ (expr | arrayInit)].
func (p *Parser) parseVarDecl() (*ast.VarDecl, *lolerr.Error) {
	p.push("parseVarDecl")
	defer p.pop()

	line := p.cur.Line
	if err := p.expect(token.I_HAS_A, "Variable Declaration", "'I HAS A'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Variable Declaration", "an identifier")
	}
	name := p.cur.Value
	p.advance()

	if p.cur.Kind != token.ITZ {
		return ast.NewVarDecl(line, name, nil), nil
	}
	p.advance()

	if p.cur.Kind == token.A && typeKeywords[p.peek(1).Kind] {
		init, err := p.parseArrayInit(name)
		if err != nil {
			return nil, err
		}
		return ast.NewVarDecl(line, name, init), nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, p.syntaxErr("Variable Declaration", "a value after 'ITZ'")
	}
	return ast.NewVarDecl(line, name, expr), nil
}

// parseArrayInit handles `A Type UHS OF sizeExpr`, embedded as an
// ArrayDecl expression inside a VarDecl's ITZ clause.
func (p *Parser) parseArrayInit(name string) (*ast.ArrayDecl, *lolerr.Error) {
	p.push("parseArrayInit")
	defer p.pop()

	line := p.cur.Line
	if err := p.expect(token.A, "Array Declaration", "'A'"); err != nil {
		return nil, err
	}
	if !typeKeywords[p.cur.Kind] {
		return nil, p.syntaxErr("Array Declaration", "a type keyword (NOOB, TROOF, NUMBR, NUMBAR, YARN)")
	}
	elemType := string(p.cur.Kind)
	p.advance()
	if err := p.expect(token.UHS, "Array Declaration", "'UHS'"); err != nil {
		return nil, err
	}
	if err := p.expect(token.OF, "Array Declaration", "'OF'"); err != nil {
		return nil, err
	}
	size, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, p.syntaxErr("Array Declaration", "a size expression after 'OF'")
	}
	return ast.NewArrayDecl(line, name, elemType, size), nil
}

// ----------------------------------------------------------------------------
// Statement lists
// ----------------------------------------------------------------------------

var stmtListStops = map[token.Kind]bool{
	token.KTHXBYE: true, token.MEBBE: true, token.NO_WAI: true, token.OIC: true,
	token.OMG: true, token.OMGWTF: true, token.IM_OUTTA_YR: true,
	token.FOUND_YR: true, token.IF_U_SAY_SO: true,
}

// parseStmtList parses statements, separated by NEWLINE/COMMA, until one
// of the given stop kinds is reached; with no stop kinds given, it stops at
// any of the generic structural stops in stmtListStops instead.
func (p *Parser) parseStmtList(stops ...token.Kind) (*ast.StmtList, *lolerr.Error) {
	line := p.cur.Line
	stopSet := map[token.Kind]bool{}
	for _, s := range stops {
		stopSet[s] = true
	}

	var stmts []ast.Stmt
	for {
		for p.cur.Kind == token.NEWLINE || p.cur.Kind == token.COMMA {
			p.advance()
		}
		if p.cur.Kind == token.EOF || stopSet[p.cur.Kind] || (len(stopSet) == 0 && stmtListStops[p.cur.Kind]) {
			break
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.NewStmtList(line, stmts), nil
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Parser) parseStmt() (ast.Stmt, *lolerr.Error) {
	switch p.cur.Kind {
	case token.I_HAS_A:
		return p.parseVarDecl()
	case token.VISIBLE:
		return p.parsePrint()
	case token.GIMMEH:
		return p.parseInput()
	case token.O_RLY:
		return p.parseIf()
	case token.WTF:
		return p.parseSwitch()
	case token.IM_IN_YR:
		return p.parseLoop()
	case token.HOW_IZ_I:
		return p.parseFuncDef()
	case token.GTFO:
		return p.parseBreak()
	case token.FOUND_YR:
		return p.parseReturn()
	case token.CONFINE:
		return p.parseArrayConfine()
	case token.DISCHARGE:
		return p.parseArrayDischarge()
	default:
		return p.parseStmtFromExpr()
	}
}

func (p *Parser) parseStmtFromExpr() (ast.Stmt, *lolerr.Error) {
	line := p.cur.Line
	if p.cur.Kind == token.IDENTIFIER && (p.peek(1).Kind == token.R || p.peek(1).Kind == token.IS_NOW_A) {
		return p.parseAssignment()
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, p.syntaxErr("Statement", "a statement")
	}
	return ast.NewExprStmt(line, expr), nil
}

func (p *Parser) parseAssignment() (ast.Stmt, *lolerr.Error) {
	p.push("parseAssignment")
	defer p.pop()

	line := p.cur.Line
	name := p.cur.Value
	p.advance() // identifier

	switch p.cur.Kind {
	case token.R:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, p.syntaxErr("Variable Assignment", "a value to assign")
		}
		return ast.NewVarAssign(line, name, expr), nil
	case token.IS_NOW_A:
		p.advance()
		if !typeKeywords[p.cur.Kind] {
			return nil, p.syntaxErr("Variable Retyping", "a type keyword (NOOB, TROOF, NUMBR, NUMBAR, YARN)")
		}
		target := string(p.cur.Kind)
		p.advance()
		cast := ast.NewTypecast(line, ast.NewVarRef(line, name), target)
		return ast.NewVarAssign(line, name, cast), nil
	}
	return nil, p.syntaxErr("Variable Assignment", "'R' or 'IS NOW A'")
}

func (p *Parser) parsePrint() (ast.Stmt, *lolerr.Error) {
	p.push("parsePrint")
	defer p.pop()

	line := p.cur.Line
	if err := p.expect(token.VISIBLE, "Output Statement", "'VISIBLE'"); err != nil {
		return nil, err
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, p.syntaxErr("Output Statement", "an expression")
	}
	operands := []ast.Expr{first}

	// AN and PLUS both separate operands; a trailing EXCLAMATION
	// suppresses the newline instead of acting as a separator.
	suppress := false
	for p.cur.Kind == token.AN || p.cur.Kind == token.PLUS || p.cur.Kind == token.EXCLAMATION {
		if p.cur.Kind == token.EXCLAMATION {
			p.advance()
			suppress = true
			break
		}
		p.advance()
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, p.syntaxErr("Output Statement", "an expression")
		}
		operands = append(operands, next)
	}

	return ast.NewPrint(line, operands, suppress), nil
}

func (p *Parser) parseInput() (ast.Stmt, *lolerr.Error) {
	p.push("parseInput")
	defer p.pop()

	line := p.cur.Line
	if err := p.expect(token.GIMMEH, "Input Statement", "'GIMMEH'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Input Statement", "a variable name")
	}
	name := p.cur.Value
	p.advance()
	return ast.NewInput(line, name), nil
}

func (p *Parser) parseBreak() (ast.Stmt, *lolerr.Error) {
	line := p.cur.Line
	if !p.inAny("loop", "switch", "function") {
		return nil, p.syntaxErr("Break Statement", "'GTFO' inside a loop, switch, or function")
	}
	p.advance()
	return ast.NewBreak(line), nil
}

func (p *Parser) parseReturn() (ast.Stmt, *lolerr.Error) {
	p.push("parseReturn")
	defer p.pop()

	line := p.cur.Line
	if !p.inAny("function") {
		return nil, p.syntaxErr("Return Statement", "'FOUND YR' inside a function")
	}
	p.advance()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, p.syntaxErr("Return Statement", "a value to return")
	}
	return ast.NewReturn(line, expr), nil
}

// ----------------------------------------------------------------------------
// If / Switch
// ----------------------------------------------------------------------------

func (p *Parser) parseIf() (ast.Stmt, *lolerr.Error) {
	p.push("parseIf")
	defer p.pop()

	line := p.cur.Line
	if err := p.expect(token.O_RLY, "If Statement", "'O RLY?'"); err != nil {
		return nil, err
	}
	for p.cur.Kind == token.NEWLINE || p.cur.Kind == token.COMMA {
		p.advance()
	}
	if err := p.expect(token.YA_RLY, "If Statement", "'YA RLY'"); err != nil {
		return nil, err
	}
	thenStmts, err := p.parseStmtList(token.MEBBE, token.NO_WAI, token.OIC)
	if err != nil {
		return nil, err
	}

	var mebbe []ast.MebbeCase
	for p.cur.Kind == token.MEBBE {
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if cond == nil {
			return nil, p.syntaxErr("If Statement", "a condition expression after 'MEBBE'")
		}
		stmts, err := p.parseStmtList(token.MEBBE, token.NO_WAI, token.OIC)
		if err != nil {
			return nil, err
		}
		mebbe = append(mebbe, ast.MebbeCase{Cond: cond, Stmts: stmts})
	}

	var elseStmts *ast.StmtList
	if p.cur.Kind == token.NO_WAI {
		p.advance()
		stmts, err := p.parseStmtList(token.OIC)
		if err != nil {
			return nil, err
		}
		elseStmts = stmts
	}

	if err := p.expect(token.OIC, "If Statement", "'OIC'"); err != nil {
		return nil, err
	}
	return ast.NewIf(line, thenStmts, mebbe, elseStmts), nil
}

func (p *Parser) parseSwitch() (ast.Stmt, *lolerr.Error) {
	p.push("parseSwitch")
	defer p.pop()
	p.pushCF("switch")
	defer p.popCF()

	line := p.cur.Line
	if err := p.expect(token.WTF, "Switch Statement", "'WTF?'"); err != nil {
		return nil, err
	}
	for p.cur.Kind == token.NEWLINE || p.cur.Kind == token.COMMA {
		p.advance()
	}
	if p.cur.Kind != token.OMG {
		return nil, p.syntaxErr("Switch Statement", "'OMG'")
	}

	var cases []ast.SwitchCase
	for p.cur.Kind == token.OMG {
		p.advance()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		stmts, err := p.parseStmtList(token.OMG, token.OMGWTF, token.OIC)
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.SwitchCase{Literal: lit, Stmts: stmts})
	}

	var defaultStmt *ast.StmtList
	if p.cur.Kind == token.OMGWTF {
		p.advance()
		stmts, err := p.parseStmtList(token.OIC)
		if err != nil {
			return nil, err
		}
		defaultStmt = stmts
	}
	if err := p.expect(token.OIC, "Switch Statement", "'OIC'"); err != nil {
		return nil, err
	}
	return ast.NewSwitch(line, cases, defaultStmt), nil
}

// ----------------------------------------------------------------------------
// Loops
// ----------------------------------------------------------------------------

func (p *Parser) parseLoop() (ast.Stmt, *lolerr.Error) {
	p.push("parseLoop")
	defer p.pop()
	p.pushCF("loop")
	defer p.popCF()

	line := p.cur.Line
	if err := p.expect(token.IM_IN_YR, "Loop Statement", "'IM IN YR'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Loop Statement", "a loop label")
	}
	label := p.cur.Value
	p.advance()

	var op ast.LoopOp
	switch p.cur.Kind {
	case token.UPPIN:
		op = ast.LoopUppin
	case token.NERFIN:
		op = ast.LoopNerfin
	default:
		return nil, p.syntaxErr("Loop Statement", "'UPPIN' or 'NERFIN'")
	}
	p.advance()

	if err := p.expect(token.YR, "Loop Statement", "'YR'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Loop Statement", "the loop variable")
	}
	loopVar := p.cur.Value
	p.advance()

	guard := ast.GuardNone
	var guardExpr ast.Expr
	switch p.cur.Kind {
	case token.TIL:
		guard = ast.GuardTil
		p.advance()
	case token.WILE:
		guard = ast.GuardWile
		p.advance()
	}
	if guard != ast.GuardNone {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, p.syntaxErr("Loop Statement", "a guard expression")
		}
		guardExpr = expr
	}

	body, err := p.parseStmtList(token.IM_OUTTA_YR)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.IM_OUTTA_YR, "Loop Statement", "'IM OUTTA YR'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Loop Statement", "the loop's exit label")
	}
	outLabel := p.cur.Value
	p.advance()
	if outLabel != label {
		return nil, p.syntaxErr("Loop Statement", fmt.Sprintf("the matching label '%s'", label))
	}

	return ast.NewLoop(line, label, op, loopVar, guard, guardExpr, body), nil
}

// ----------------------------------------------------------------------------
// Functions
// ----------------------------------------------------------------------------

func (p *Parser) parseFuncDef() (*ast.FuncDef, *lolerr.Error) {
	p.push("parseFuncDef")
	defer p.pop()
	p.pushCF("function")
	defer p.popCF()

	line := p.cur.Line
	if err := p.expect(token.HOW_IZ_I, "Function Definition", "'HOW IZ I'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Function Definition", "a function name")
	}
	name := p.cur.Value
	p.advance()

	var params []string
	if p.cur.Kind == token.YR {
		p.advance()
		if p.cur.Kind != token.IDENTIFIER {
			return nil, p.syntaxErr("Function Definition", "a parameter name")
		}
		params = append(params, p.cur.Value)
		p.advance()

		for p.cur.Kind == token.AN {
			p.advance()
			if err := p.expect(token.YR, "Function Definition", "'YR' after 'AN'"); err != nil {
				return nil, err
			}
			if p.cur.Kind != token.IDENTIFIER {
				return nil, p.syntaxErr("Function Definition", "a parameter name")
			}
			params = append(params, p.cur.Value)
			p.advance()
		}
	}

	body, err := p.parseStmtList(token.IF_U_SAY_SO)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.IF_U_SAY_SO, "Function Definition", "'IF U SAY SO'"); err != nil {
		return nil, err
	}

	return ast.NewFuncDef(line, name, params, body), nil
}

func (p *Parser) parseFuncCall() (ast.Expr, *lolerr.Error) {
	p.push("parseFuncCall")
	defer p.pop()

	line := p.cur.Line
	if err := p.expect(token.I_IZ, "Function Call", "'I IZ'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Function Call", "a function name")
	}
	name := p.cur.Value
	p.advance()

	var args []ast.Expr
	if p.cur.Kind == token.YR {
		p.advance()
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if first == nil {
			return nil, p.syntaxErr("Function Call", "an argument expression")
		}
		args = append(args, first)

		for p.cur.Kind == token.AN {
			p.advance()
			if err := p.expect(token.YR, "Function Call", "'YR' after 'AN'"); err != nil {
				return nil, err
			}
			next, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if next == nil {
				return nil, p.syntaxErr("Function Call", "an argument expression")
			}
			args = append(args, next)
		}
	}

	if err := p.expect(token.MKAY, "Function Call", "'MKAY'"); err != nil {
		return nil, err
	}
	return ast.NewFuncCall(line, name, args), nil
}

// ----------------------------------------------------------------------------
// Arrays
// ----------------------------------------------------------------------------

func (p *Parser) parseArrayConfine() (ast.Stmt, *lolerr.Error) {
	p.push("parseArrayConfine")
	defer p.pop()

	line := p.cur.Line
	if err := p.expect(token.CONFINE, "Array Write", "'CONFINE'"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, p.syntaxErr("Array Write", "a value to write")
	}
	if err := p.expect(token.IN, "Array Write", "'IN'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Array Write", "an array name")
	}
	arrName := p.cur.Value
	p.advance()
	if err := p.expect(token.AT, "Array Write", "'AT'"); err != nil {
		return nil, err
	}
	idx, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return nil, p.syntaxErr("Array Write", "an index expression")
	}
	return ast.NewArrayConfine(line, value, arrName, idx), nil
}

func (p *Parser) parseArrayDischarge() (ast.Stmt, *lolerr.Error) {
	p.push("parseArrayDischarge")
	defer p.pop()

	line := p.cur.Line
	if err := p.expect(token.DISCHARGE, "Array Remove", "'DISCHARGE'"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.IDENTIFIER {
		return nil, p.syntaxErr("Array Remove", "an array name")
	}
	arrName := p.cur.Value
	p.advance()
	if err := p.expect(token.AT, "Array Remove", "'AT'"); err != nil {
		return nil, err
	}
	idx, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return nil, p.syntaxErr("Array Remove", "an index expression")
	}
	return ast.NewArrayDischarge(line, arrName, idx), nil
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// parseExpr handles the non-nestable forms (SMOOSH, ALL OF/ANY OF) first,
// then falls through to nestable expressions.
func (p *Parser) parseExpr() (ast.Expr, *lolerr.Error) {
	switch p.cur.Kind {
	case token.SMOOSH:
		return p.parseStrConcat()
	case token.ALL_OF, token.ANY_OF:
		return p.parseBoolVariadic()
	default:
		return p.parseNestable()
	}
}

// parseNestable dispatches every operand-position production. Every AN
// separated slot accepts any nestable expression; type mismatches are
// caught by the runtime coercion matrix regardless, so nothing is gained
// by restricting which productions may appear as an operand.
func (p *Parser) parseNestable() (ast.Expr, *lolerr.Error) {
	switch p.cur.Kind {
	case token.SUM_OF, token.DIFF_OF, token.PRODUKT_OF, token.QUOSHUNT_OF, token.MOD_OF, token.BIGGR_OF, token.SMALLR_OF:
		return p.parseArithBinOp()
	case token.BOTH_OF, token.EITHER_OF, token.WON_OF:
		return p.parseBoolBinOp()
	case token.NOT:
		return p.parseBoolUnOp()
	case token.BOTH_SAEM, token.DIFFRINT:
		return p.parseCompare()
	case token.I_IZ:
		return p.parseFuncCall()
	case token.MAEK:
		return p.parseTypecast()
	case token.IDENTIFIER:
		return p.parseIdentExpr()
	case token.INTEGER, token.FLOAT, token.QUOTE, token.STRING, token.WIN, token.FAIL, token.NOOB:
		return p.parseLiteral()
	default:
		return nil, nil // not an expression start; caller decides whether that's an error
	}
}

func (p *Parser) parseIdentExpr() (ast.Expr, *lolerr.Error) {
	line := p.cur.Line
	name := p.cur.Value
	p.advance()
	if p.cur.Kind == token.LBRACKET {
		p.advance()
		idx, err := p.parseNestable()
		if err != nil {
			return nil, err
		}
		if idx == nil {
			return nil, p.syntaxErr("Array Access", "an index expression")
		}
		if err := p.expect(token.RBRACKET, "Array Access", "']'"); err != nil {
			return nil, err
		}
		return ast.NewArrayAccess(line, name, idx), nil
	}
	return ast.NewVarRef(line, name), nil
}

func (p *Parser) parseLiteral() (ast.Expr, *lolerr.Error) {
	line := p.cur.Line
	switch p.cur.Kind {
	case token.INTEGER:
		n, convErr := strconv.ParseInt(p.cur.Value, 10, 64)
		if convErr != nil {
			return nil, lolerr.NewSyntax(line, p.cur.Col, "malformed integer literal '"+p.cur.Value+"'").WithStack(p.ctxStack)
		}
		p.advance()
		return ast.NewIntLit(line, n), nil
	case token.FLOAT:
		f, convErr := strconv.ParseFloat(p.cur.Value, 64)
		if convErr != nil {
			return nil, lolerr.NewSyntax(line, p.cur.Col, "malformed float literal '"+p.cur.Value+"'").WithStack(p.ctxStack)
		}
		p.advance()
		return ast.NewFloatLit(line, f), nil
	case token.QUOTE:
		p.advance()
		if p.cur.Kind != token.STRING {
			return nil, p.syntaxErr("Literal", "a string body")
		}
		v := p.cur.Value
		p.advance()
		if err := p.expect(token.QUOTE, "Literal", "a closing '\"'"); err != nil {
			return nil, err
		}
		return ast.NewStringLit(line, v), nil
	case token.STRING:
		v := p.cur.Value
		p.advance()
		return ast.NewStringLit(line, v), nil
	case token.WIN:
		p.advance()
		return ast.NewBoolLit(line, true), nil
	case token.FAIL:
		p.advance()
		return ast.NewBoolLit(line, false), nil
	case token.NOOB:
		p.advance()
		return ast.NewNoobLit(line), nil
	}
	return nil, p.syntaxErr("Literal", "a literal value")
}

func kindToArithOp(k token.Kind) ast.ArithOp {
	switch k {
	case token.SUM_OF:
		return ast.ArithSum
	case token.DIFF_OF:
		return ast.ArithDiff
	case token.PRODUKT_OF:
		return ast.ArithProd
	case token.QUOSHUNT_OF:
		return ast.ArithQuot
	case token.MOD_OF:
		return ast.ArithMod
	case token.BIGGR_OF:
		return ast.ArithBiggr
	case token.SMALLR_OF:
		return ast.ArithSmallr
	}
	return ""
}

func (p *Parser) parseArithBinOp() (ast.Expr, *lolerr.Error) {
	p.push("parseArithBinOp")
	defer p.pop()

	line := p.cur.Line
	op := kindToArithOp(p.cur.Kind)
	p.advance()

	left, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, p.syntaxErr("Arithmetic Operation", "a left operand")
	}
	if err := p.expect(token.AN, "Arithmetic Operation", "'AN'"); err != nil {
		return nil, err
	}
	right, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if right == nil {
		return nil, p.syntaxErr("Arithmetic Operation", "a right operand")
	}
	return ast.NewArithBinOp(line, op, left, right), nil
}

func kindToBoolOp(k token.Kind) ast.BoolOp {
	switch k {
	case token.BOTH_OF:
		return ast.BoolBoth
	case token.EITHER_OF:
		return ast.BoolEither
	case token.WON_OF:
		return ast.BoolWon
	}
	return ""
}

func (p *Parser) parseBoolBinOp() (ast.Expr, *lolerr.Error) {
	p.push("parseBoolBinOp")
	defer p.pop()

	line := p.cur.Line
	op := kindToBoolOp(p.cur.Kind)
	p.advance()

	left, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, p.syntaxErr("Boolean Operation", "a left operand")
	}
	if err := p.expect(token.AN, "Boolean Operation", "'AN'"); err != nil {
		return nil, err
	}
	right, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if right == nil {
		return nil, p.syntaxErr("Boolean Operation", "a right operand")
	}
	return ast.NewBoolBinOp(line, op, left, right), nil
}

func (p *Parser) parseBoolUnOp() (ast.Expr, *lolerr.Error) {
	p.push("parseBoolUnOp")
	defer p.pop()

	line := p.cur.Line
	p.advance() // NOT
	operand, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if operand == nil {
		return nil, p.syntaxErr("Boolean Operation", "an operand after 'NOT'")
	}
	return ast.NewBoolUnOp(line, operand), nil
}

func (p *Parser) parseBoolVariadic() (ast.Expr, *lolerr.Error) {
	p.push("parseBoolVariadic")
	defer p.pop()

	line := p.cur.Line
	var op ast.VariadicOp
	if p.cur.Kind == token.ALL_OF {
		op = ast.VariadicAll
	} else {
		op = ast.VariadicAny
	}
	p.advance()

	first, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, p.syntaxErr("Boolean Operation", "an operand")
	}
	operands := []ast.Expr{first}

	if p.cur.Kind != token.AN {
		return nil, p.syntaxErr("Boolean Operation", "'AN'")
	}
	for p.cur.Kind == token.AN {
		p.advance()
		next, err := p.parseNestable()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, p.syntaxErr("Boolean Operation", "an operand")
		}
		operands = append(operands, next)
	}

	if err := p.expect(token.MKAY, "Boolean Operation", "'MKAY'"); err != nil {
		return nil, err
	}
	return ast.NewBoolVariadic(line, op, operands), nil
}

func (p *Parser) parseCompare() (ast.Expr, *lolerr.Error) {
	p.push("parseCompare")
	defer p.pop()

	line := p.cur.Line
	var op ast.CompareOp
	if p.cur.Kind == token.BOTH_SAEM {
		op = ast.CompareSame
	} else {
		op = ast.CompareDiff
	}
	p.advance()

	left, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, p.syntaxErr("Comparison", "a left operand")
	}
	if err := p.expect(token.AN, "Comparison", "'AN'"); err != nil {
		return nil, err
	}
	right, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if right == nil {
		return nil, p.syntaxErr("Comparison", "a right operand")
	}
	return ast.NewCompare(line, op, left, right), nil
}

func (p *Parser) parseStrConcat() (ast.Expr, *lolerr.Error) {
	p.push("parseStrConcat")
	defer p.pop()

	line := p.cur.Line
	p.advance() // SMOOSH

	first, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, p.syntaxErr("String Concatenation", "an operand after 'SMOOSH'")
	}
	operands := []ast.Expr{first}

	for p.cur.Kind == token.AN {
		p.advance()
		next, err := p.parseNestable()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, p.syntaxErr("String Concatenation", "an operand")
		}
		operands = append(operands, next)
	}
	if p.cur.Kind == token.MKAY {
		p.advance()
	}
	return ast.NewStrConcat(line, operands), nil
}

func (p *Parser) parseTypecast() (ast.Expr, *lolerr.Error) {
	p.push("parseTypecast")
	defer p.pop()

	line := p.cur.Line
	p.advance() // MAEK

	// MAEK A <expr> <type>: alternative syntax.
	if p.cur.Kind == token.A {
		p.advance()
		src, err := p.parseNestable()
		if err != nil {
			return nil, err
		}
		if src == nil {
			return nil, p.syntaxErr("Typecast", "an expression to cast")
		}
		if !typeKeywords[p.cur.Kind] {
			return nil, p.syntaxErr("Typecast", "a type keyword (NOOB, TROOF, NUMBR, NUMBAR, YARN)")
		}
		target := string(p.cur.Kind)
		p.advance()
		return ast.NewTypecast(line, src, target), nil
	}

	// MAEK <expr> A <type>: base syntax.
	src, err := p.parseNestable()
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, p.syntaxErr("Typecast", "an expression to cast")
	}
	if err := p.expect(token.A, "Typecast", "'A'"); err != nil {
		return nil, err
	}
	if !typeKeywords[p.cur.Kind] {
		return nil, p.syntaxErr("Typecast", "a type keyword (NOOB, TROOF, NUMBR, NUMBAR, YARN)")
	}
	target := string(p.cur.Kind)
	p.advance()
	return ast.NewTypecast(line, src, target), nil
}
