// Package parser turns a lexer.Token stream into a schema.Schema. It is a
// recursive-descent, single-pass, fully eager parser: an optional leading
// `package IDENT ;`, then a sequence of enum/struct/message definitions.
package parser

import (
	"strconv"

	"github.com/eriksen/brineschema/brineerr"
	"github.com/eriksen/brineschema/lexer"
	"github.com/eriksen/brineschema/schema"
)

type parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse consumes a full token stream (as produced by lexer.Tokenize,
// including its trailing EOF token) and returns the schema it describes, or
// the first syntax error encountered.
func Parse(tokens []lexer.Token) (schema.Schema, error) {
	p := &parser{tokens: tokens}
	return p.parseSchema()
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) eat(kind lexer.Kind) (lexer.Token, bool) {
	tok := p.current()
	if tok.Kind == kind {
		p.pos++
		return tok, true
	}
	return lexer.Token{}, false
}

func (p *parser) expect(kind lexer.Kind, expected string) (lexer.Token, error) {
	if tok, ok := p.eat(kind); ok {
		return tok, nil
	}
	tok := p.current()
	return lexer.Token{}, brineerr.Syntax(tok.Pos, "expected %s but found %q", expected, tok.Text)
}

func (p *parser) parseSchema() (schema.Schema, error) {
	var s schema.Schema

	if _, ok := p.eatKeyword("package"); ok {
		pkgTok, err := p.expect(lexer.KindIdent, "identifier")
		if err != nil {
			return schema.Schema{}, err
		}
		if _, err := p.expect(lexer.KindSemicolon, `";"`); err != nil {
			return schema.Schema{}, err
		}
		s.Package = pkgTok.Text
		s.HasPackage = true
	}

	for p.current().Kind != lexer.KindEOF {
		def, err := p.parseDefinition()
		if err != nil {
			return schema.Schema{}, err
		}
		s.Definitions = append(s.Definitions, def)
	}

	return s, nil
}

// eatKeyword eats an identifier token whose text matches word exactly.
func (p *parser) eatKeyword(word string) (lexer.Token, bool) {
	tok := p.current()
	if tok.Kind == lexer.KindIdent && tok.Text == word {
		p.pos++
		return tok, true
	}
	return lexer.Token{}, false
}

func (p *parser) parseDefinition() (schema.Definition, error) {
	var kind schema.Kind
	switch {
	case firstEat(p, "enum"):
		kind = schema.KindEnum
	case firstEat(p, "struct"):
		kind = schema.KindStruct
	case firstEat(p, "message"):
		kind = schema.KindMessage
	default:
		tok := p.current()
		return schema.Definition{}, brineerr.Syntax(tok.Pos, "unexpected token %q", tok.Text)
	}

	nameTok, err := p.expect(lexer.KindIdent, "identifier")
	if err != nil {
		return schema.Definition{}, err
	}
	if _, err := p.expect(lexer.KindLBrace, `"{"`); err != nil {
		return schema.Definition{}, err
	}

	var fields []schema.Field
	for {
		if _, ok := p.eat(lexer.KindRBrace); ok {
			break
		}
		field, err := p.parseField(kind, len(fields))
		if err != nil {
			return schema.Definition{}, err
		}
		fields = append(fields, field)
	}

	return schema.Definition{
		Name:   nameTok.Text,
		Pos:    nameTok.Pos,
		Kind:   kind,
		Fields: fields,
	}, nil
}

func firstEat(p *parser, word string) bool {
	_, ok := p.eatKeyword(word)
	return ok
}

func (p *parser) parseField(kind schema.Kind, ordinal int) (schema.Field, error) {
	var typeName string
	var isArray bool

	if kind != schema.KindEnum {
		typeTok, err := p.expect(lexer.KindIdent, "identifier")
		if err != nil {
			return schema.Field{}, err
		}
		typeName = typeTok.Text
		if _, ok := p.eat(lexer.KindArray); ok {
			isArray = true
		}
	}

	nameTok, err := p.expect(lexer.KindIdent, "identifier")
	if err != nil {
		return schema.Field{}, err
	}

	var id int
	if kind == schema.KindStruct {
		id = ordinal + 1
	} else {
		if _, err := p.expect(lexer.KindEquals, `"="`); err != nil {
			return schema.Field{}, err
		}
		intTok, err := p.expect(lexer.KindInt, "integer")
		if err != nil {
			return schema.Field{}, err
		}
		parsed, convErr := strconv.ParseInt(intTok.Text, 10, 32)
		if convErr != nil {
			return schema.Field{}, brineerr.Syntax(intTok.Pos, "invalid integer %q", intTok.Text)
		}
		id = int(parsed)
	}

	var isDeprecated bool
	if depTok, ok := p.eat(lexer.KindDeprecated); ok {
		if kind != schema.KindMessage {
			return schema.Field{}, brineerr.Syntax(depTok.Pos, "cannot deprecate this field")
		}
		isDeprecated = true
	}

	if _, err := p.expect(lexer.KindSemicolon, `";"`); err != nil {
		return schema.Field{}, err
	}

	return schema.Field{
		Name:         nameTok.Text,
		Pos:          nameTok.Pos,
		TypeName:     typeName,
		IsArray:      isArray,
		IsDeprecated: isDeprecated,
		ID:           id,
	}, nil
}
