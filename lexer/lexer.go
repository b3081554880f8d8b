// ----------------------------------------------------------------------------
// FILE: lexer/lexer.go
// ----------------------------------------------------------------------------
package lexer

import (
	"regexp"
	"strings"

	"lolcode/lolerr"
	"lolcode/token"
)

// rule is one entry of the ordered, longest-match-first scanning table
// (mirrors a classic lexer TOKEN_SPEC: multi-word keywords before their
// single-word prefixes, before identifiers).
type rule struct {
	kind    token.Kind
	pattern *regexp.Regexp
	skip    bool // comments: matched and discarded, no token emitted
}

// Multi-word keywords match on runs of words separated by one-or-more
// spaces/tabs, never a newline. Longest/most-specific phrases are listed
// before any keyword that is a prefix of them.
var rules = buildRules()

func buildRules() []rule {
	ws := `[ \t]+`
	r := func(kind token.Kind, pat string) rule {
		// A keyword ending in a letter must end at a word boundary, so it
		// never matches the front of a longer word ("AT", "ARR", "RESULT").
		if c := pat[len(pat)-1]; c >= 'A' && c <= 'Z' {
			pat += `\b`
		}
		return rule{kind: kind, pattern: regexp.MustCompile(`^(?:` + pat + `)`)}
	}
	skip := func(pat string) rule {
		return rule{pattern: regexp.MustCompile(`^(?:` + pat + `)`), skip: true}
	}

	return []rule{
		// Comments are discarded entirely, matched first so keyword bodies
		// inside a comment are never misread as tokens.
		skip(`BTW[^\n]*`),
		skip(`(?s)OBTW.*?TLDR`),

		// Multi-word keywords, longest/most specific first.
		r(token.IM_OUTTA_YR, `IM`+ws+`OUTTA`+ws+`YR`),
		r(token.IM_IN_YR, `IM`+ws+`IN`+ws+`YR`),
		r(token.HOW_IZ_I, `HOW`+ws+`IZ`+ws+`I`),
		r(token.IF_U_SAY_SO, `IF`+ws+`U`+ws+`SAY`+ws+`SO`),
		r(token.I_HAS_A, `I`+ws+`HAS`+ws+`A`),
		r(token.IS_NOW_A, `IS`+ws+`NOW`+ws+`A`),
		r(token.SUM_OF, `SUM`+ws+`OF`),
		r(token.DIFF_OF, `DIFF`+ws+`OF`),
		r(token.PRODUKT_OF, `PRODUKT`+ws+`OF`),
		r(token.QUOSHUNT_OF, `QUOSHUNT`+ws+`OF`),
		r(token.MOD_OF, `MOD`+ws+`OF`),
		r(token.BIGGR_OF, `BIGGR`+ws+`OF`),
		r(token.SMALLR_OF, `SMALLR`+ws+`OF`),
		r(token.BOTH_OF, `BOTH`+ws+`OF`),
		r(token.EITHER_OF, `EITHER`+ws+`OF`),
		r(token.WON_OF, `WON`+ws+`OF`),
		r(token.ANY_OF, `ANY`+ws+`OF`),
		r(token.ALL_OF, `ALL`+ws+`OF`),
		r(token.BOTH_SAEM, `BOTH`+ws+`SAEM`),
		r(token.FOUND_YR, `FOUND`+ws+`YR`),
		r(token.I_IZ, `I`+ws+`IZ`),
		r(token.O_RLY, `O`+ws+`RLY\?`),
		r(token.YA_RLY, `YA`+ws+`RLY`),
		r(token.NO_WAI, `NO`+ws+`WAI`),
		r(token.WTF, `WTF\?`),

		// Single-word keywords.
		r(token.HAI, `HAI`),
		r(token.KTHXBYE, `KTHXBYE`),
		r(token.WAZZUP, `WAZZUP`),
		r(token.BUHBYE, `BUHBYE`),
		r(token.ITZ, `ITZ`),
		r(token.R, `R`),
		r(token.NOT, `NOT`),
		r(token.DIFFRINT, `DIFFRINT`),
		r(token.SMOOSH, `SMOOSH`),
		r(token.MAEK, `MAEK`),
		r(token.AN, `AN`),
		r(token.OF, `OF`),
		r(token.A, `A`),
		r(token.VISIBLE, `VISIBLE`),
		r(token.GIMMEH, `GIMMEH`),
		r(token.OIC, `OIC`),
		r(token.OMGWTF, `OMGWTF`),
		r(token.OMG, `OMG`),
		r(token.MEBBE, `MEBBE`),
		r(token.UPPIN, `UPPIN`),
		r(token.NERFIN, `NERFIN`),
		r(token.YR, `YR`),
		r(token.TIL, `TIL`),
		r(token.WILE, `WILE`),
		r(token.GTFO, `GTFO`),
		r(token.MKAY, `MKAY`),
		r(token.CONFINE, `CONFINE`),
		r(token.DISCHARGE, `DISCHARGE`),
		r(token.IN, `IN`),
		r(token.AT, `AT`),

		// Type keywords.
		r(token.NOOB, `NOOB`),
		r(token.NUMBR, `NUMBR`),
		r(token.NUMBAR, `NUMBAR`),
		r(token.YARN, `YARN`),
		r(token.TROOF, `TROOF`),
		r(token.UHS, `UHS`),

		// Boolean literals.
		r(token.WIN, `WIN`),
		r(token.FAIL, `FAIL`),

		// Numeric literals: float before integer.
		r(token.FLOAT, `-?\d+\.\d+`),
		r(token.INTEGER, `-?\d+`),

		// Identifiers are last among word-like rules so no keyword prefix
		// is ever swallowed by this one.
		r(token.IDENTIFIER, `[A-Za-z_][A-Za-z0-9_]*`),

		// Special characters.
		r(token.ELLIPSIS, `\.\.\.`),
		r(token.COMMA, `,`),
		r(token.EXCLAMATION, `!`),
		r(token.PLUS, `\+`),
		r(token.LBRACKET, `\[`),
		r(token.RBRACKET, `\]`),

		// Newline is emitted as its own token; plain whitespace is
		// skipped.
		r(token.NEWLINE, `\n`),
		skip(`[ \t]+`),
	}
}

// reservedCommentWords catches identifiers that collide with comment
// delimiters appearing where only a comment keyword is valid.
var reservedCommentWords = map[string]bool{"BTW": true, "OBTW": true, "TLDR": true}

// Tokenize converts LOLCODE source text into a token stream, or a
// structured LexError at the first character no rule accepts. It is a
// pure function: no I/O, no shared state across calls.
func Tokenize(source string) ([]token.Token, *lolerr.Error) {
	var tokens []token.Token
	line, col := 1, 1
	pos := 0

	for pos < len(source) {
		if source[pos] == '"' {
			tok, rest, nl, nc, err := scanString(source, pos, line, col)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok...)
			pos, line, col = rest, nl, nc
			continue
		}

		matched := false
		for _, rl := range rules {
			loc := rl.pattern.FindStringIndex(source[pos:])
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := source[pos : pos+loc[1]]

			if !rl.skip {
				if rl.kind == token.IDENTIFIER && reservedCommentWords[lexeme] {
					return nil, lolerr.NewLex(line, col, "identifier '"+lexeme+"' collides with a reserved comment keyword")
				}
				tok := token.Token{Kind: rl.kind, Lexeme: lexeme, Value: lexeme, Line: line, Col: col}
				if rl.kind == token.STRING {
					tok.Value = lexeme
				}
				tok.Category = token.Category(tok)
				tokens = append(tokens, tok)
			}

			nlCount := strings.Count(lexeme, "\n")
			if nlCount > 0 {
				line += nlCount
				col = len(lexeme) - strings.LastIndex(lexeme, "\n")
			} else {
				col += len(lexeme)
			}
			pos += loc[1]
			matched = true
			break
		}

		if !matched {
			return nil, lolerr.NewLex(line, col, "unexpected character '"+string(source[pos])+"'")
		}
	}

	tokens = collapseEllipsis(tokens)
	return tokens, nil
}

// scanString handles inside-string mode: it expects source[pos] == '"',
// emits a QUOTE, STRING, QUOTE triple, and advances past the closing
// quote. Escape sequences all begin with ':'. An unescaped newline inside
// the string body is a LexError.
func scanString(source string, pos, line, col int) ([]token.Token, int, int, int, *lolerr.Error) {
	startLine, startCol := line, col
	quoteOpen := token.Token{Kind: token.QUOTE, Lexeme: `"`, Value: `"`, Line: line, Col: col}
	quoteOpen.Category = token.Category(quoteOpen)
	pos++
	col++

	var body strings.Builder
	for {
		if pos >= len(source) {
			return nil, 0, 0, 0, lolerr.NewLex(startLine, startCol, "unterminated string literal")
		}
		ch := source[pos]
		if ch == '"' {
			break
		}
		if ch == '\n' {
			return nil, 0, 0, 0, lolerr.NewLex(line, col, "unterminated string literal: unescaped newline")
		}
		if ch == ':' && pos+1 < len(source) {
			switch source[pos+1] {
			case ')':
				body.WriteByte('\n')
				pos += 2
				col += 2
				continue
			case '>':
				body.WriteByte('\t')
				pos += 2
				col += 2
				continue
			case 'o':
				body.WriteByte('\a')
				pos += 2
				col += 2
				continue
			case '"':
				body.WriteByte('"')
				pos += 2
				col += 2
				continue
			case ':':
				body.WriteByte(':')
				pos += 2
				col += 2
				continue
			}
		}
		body.WriteByte(ch)
		pos++
		col++
	}

	strTok := token.Token{Kind: token.STRING, Lexeme: body.String(), Value: body.String(), Line: startLine, Col: startCol}
	strTok.Category = token.Category(strTok)

	quoteClose := token.Token{Kind: token.QUOTE, Lexeme: `"`, Value: `"`, Line: line, Col: col}
	quoteClose.Category = token.Category(quoteClose)

	pos++ // consume closing quote
	col++

	return []token.Token{quoteOpen, strTok, quoteClose}, pos, line, col, nil
}

// collapseEllipsis implements the ellipsis-continuation rule: any ELLIPSIS
// token immediately followed by a NEWLINE token is removed, so a
// statement split across physical lines tokenizes as if it were one line.
func collapseEllipsis(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if tokens[i].Kind == token.ELLIPSIS && i+1 < len(tokens) && tokens[i+1].Kind == token.NEWLINE {
			i++ // drop both the ELLIPSIS and the NEWLINE it continues past
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}
