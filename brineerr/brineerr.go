// Package brineerr holds the sentinel errors that back every failure mode
// described by the toolchain, grouped the way the teacher keeps its
// package-level `var Err... = errors.New(...)` declarations
// (encoder/encode.go, encoder/decode.go, schema/registry.go), generalized
// with %w wrapping so callers can errors.Is/errors.As against a category
// while still getting the concrete message and position.
package brineerr

import (
	"errors"
	"fmt"

	"github.com/eriksen/brineschema/schema"
)

var (
	// ErrSyntax is wrapped by every tokenize/parse failure.
	ErrSyntax = errors.New("brineschema: syntax error")
	// ErrVerify is wrapped by every verifier failure.
	ErrVerify = errors.New("brineschema: schema verification failed")
	// ErrSchemaEncode is wrapped when a schema cannot be encoded to binary.
	ErrSchemaEncode = errors.New("brineschema: schema encode failed")
	// ErrSchemaDecode is wrapped when a binary schema cannot be decoded.
	ErrSchemaDecode = errors.New("brineschema: schema decode failed")
	// ErrValueDecode is wrapped when a dynamic value cannot be decoded.
	ErrValueDecode = errors.New("brineschema: value decode failed")
	// ErrValueEncode is wrapped when a dynamic value cannot be encoded.
	ErrValueEncode = errors.New("brineschema: value encode failed")
	// ErrMissingField is wrapped when a required struct field is absent.
	ErrMissingField = errors.New("brineschema: required field not present")
)

// PositionedError carries the source position of a tokenize/parse/verify
// failure alongside the underlying category error.
type PositionedError struct {
	Pos     schema.Position
	Message string
	Err     error
}

func (e *PositionedError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *PositionedError) Unwrap() error { return e.Err }

// Syntax builds a PositionedError wrapping ErrSyntax.
func Syntax(pos schema.Position, format string, args ...any) error {
	return &PositionedError{Pos: pos, Message: fmt.Sprintf(format, args...), Err: ErrSyntax}
}

// Verify builds a PositionedError wrapping ErrVerify.
func Verify(pos schema.Position, format string, args ...any) error {
	return &PositionedError{Pos: pos, Message: fmt.Sprintf(format, args...), Err: ErrVerify}
}
