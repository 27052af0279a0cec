// Package lexer turns IDL source text into a flat token stream. It performs
// a single left-to-right pass: at every position it tries, in order,
// whitespace, a line comment, an integer literal, a punctuator, the
// deprecation tag, the array marker, or an identifier. Any byte that matches
// none of these is a syntax error reported at its exact line/column.
package lexer

import (
	"github.com/eriksen/brineschema/brineerr"
	"github.com/eriksen/brineschema/schema"
)

// Kind classifies a Token.
type Kind int

const (
	KindIdent Kind = iota
	KindInt
	KindEquals
	KindSemicolon
	KindLBrace
	KindRBrace
	KindArray      // []
	KindDeprecated // [deprecated]
	KindEOF
)

// Token is one lexical unit plus its source position. Text holds the raw
// token text for identifiers and integer literals (the parser is
// responsible for parsing the integer out of Text). The final token in
// every stream is a KindEOF with empty Text carrying the position at the
// end of the input.
type Token struct {
	Kind Kind
	Text string
	Pos  schema.Position
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

// Tokenize lexes the full text and returns its token stream (always ending
// in a KindEOF token) or the first syntax error encountered.
func Tokenize(text string) ([]Token, error) {
	var tokens []Token
	line, col := 1, 1
	i := 0
	n := len(text)

	advance := func(count int) {
		for k := 0; k < count; k++ {
			if text[i+k] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += count
	}

	for i < n {
		startLine, startCol := line, col
		c := text[i]

		switch {
		case isSpace(c):
			advance(1)
			continue

		case c == '/' && i+1 < n && text[i+1] == '/':
			j := i
			for j < n && text[j] != '\n' {
				j++
			}
			advance(j - i)
			continue

		case c == '-' || isDigit(c):
			j := i
			if c == '-' {
				j++
			}
			start := j
			for j < n && isDigit(text[j]) {
				j++
			}
			if j == start {
				return nil, brineerr.Syntax(schema.Position{Line: startLine, Column: startCol}, "syntax error: %q", string(c))
			}
			lit := text[i:j]
			advance(j - i)
			tokens = append(tokens, Token{Kind: KindInt, Text: lit, Pos: schema.Position{Line: startLine, Column: startCol}})
			continue

		case c == '=':
			advance(1)
			tokens = append(tokens, Token{Kind: KindEquals, Text: "=", Pos: schema.Position{Line: startLine, Column: startCol}})
			continue

		case c == ';':
			advance(1)
			tokens = append(tokens, Token{Kind: KindSemicolon, Text: ";", Pos: schema.Position{Line: startLine, Column: startCol}})
			continue

		case c == '{':
			advance(1)
			tokens = append(tokens, Token{Kind: KindLBrace, Text: "{", Pos: schema.Position{Line: startLine, Column: startCol}})
			continue

		case c == '}':
			advance(1)
			tokens = append(tokens, Token{Kind: KindRBrace, Text: "}", Pos: schema.Position{Line: startLine, Column: startCol}})
			continue

		case c == '[':
			if hasPrefixAt(text, i, "[deprecated]") {
				advance(len("[deprecated]"))
				tokens = append(tokens, Token{Kind: KindDeprecated, Text: "[deprecated]", Pos: schema.Position{Line: startLine, Column: startCol}})
				continue
			}
			if hasPrefixAt(text, i, "[]") {
				advance(2)
				tokens = append(tokens, Token{Kind: KindArray, Text: "[]", Pos: schema.Position{Line: startLine, Column: startCol}})
				continue
			}
			return nil, brineerr.Syntax(schema.Position{Line: startLine, Column: startCol}, "syntax error: %q", "[")

		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentCont(text[j]) {
				j++
			}
			lit := text[i:j]
			advance(j - i)
			tokens = append(tokens, Token{Kind: KindIdent, Text: lit, Pos: schema.Position{Line: startLine, Column: startCol}})
			continue

		default:
			return nil, brineerr.Syntax(schema.Position{Line: startLine, Column: startCol}, "syntax error: %q", string(c))
		}
	}

	tokens = append(tokens, Token{Kind: KindEOF, Pos: schema.Position{Line: line, Column: col}})
	return tokens, nil
}

func hasPrefixAt(text string, at int, prefix string) bool {
	if at+len(prefix) > len(text) {
		return false
	}
	return text[at:at+len(prefix)] == prefix
}
