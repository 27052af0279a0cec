// Package brineschema ties the front end (lexer, parser, verifier) and the
// binary schema codec together into the two operations most callers need:
// compiling IDL source text down to a verified schema plus its binary
// artifact, and decoding that artifact back.
package brineschema

import (
	"fmt"

	"github.com/eriksen/brineschema/binschema"
	"github.com/eriksen/brineschema/lexer"
	"github.com/eriksen/brineschema/parser"
	"github.com/eriksen/brineschema/schema"
	"github.com/eriksen/brineschema/verify"
)

// CompileSchema tokenizes, parses, and verifies text, then encodes the
// resulting schema.Schema into its binary form. The returned schema is the
// one parsed from text (package name, source positions, and deprecation
// flags intact); the returned bytes are what a peer would decode with
// DecodeBinarySchema.
func CompileSchema(text string) (schema.Schema, []byte, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return schema.Schema{}, nil, err
	}

	s, err := parser.Parse(tokens)
	if err != nil {
		return schema.Schema{}, nil, err
	}

	if err := verify.Verify(s); err != nil {
		return schema.Schema{}, nil, err
	}

	encoded, err := binschema.Encode(s)
	if err != nil {
		return schema.Schema{}, nil, fmt.Errorf("compiling schema: %w", err)
	}

	return s, encoded, nil
}

// DecodeBinarySchema parses a binary schema artifact. The result carries no
// package name and every Position and IsDeprecated field is zeroed, since
// the wire format does not encode them.
func DecodeBinarySchema(b []byte) (schema.Schema, error) {
	return binschema.Decode(b)
}

// EncodeBinarySchema serializes an already-verified schema.Schema to its
// binary form.
func EncodeBinarySchema(s schema.Schema) ([]byte, error) {
	return binschema.Encode(s)
}
