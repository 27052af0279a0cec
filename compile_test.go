package brineschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	brineschema "github.com/eriksen/brineschema"
)

func TestCompileSchemaRoundTrip(t *testing.T) {
	text := `
		enum Type { FLAT = 0; ROUND = 1; POINTED = 2; }
		struct Color { byte red; byte green; byte blue; byte alpha; }
		message Example { uint clientID = 1; Type type = 2; Color[] colors = 3; }
	`

	s, encoded, err := brineschema.CompileSchema(text)
	require.NoError(t, err)
	require.Len(t, s.Definitions, 3)
	assert.NotEmpty(t, encoded)

	decoded, err := brineschema.DecodeBinarySchema(encoded)
	require.NoError(t, err)
	assert.Len(t, decoded.Definitions, 3)
	assert.Equal(t, s.Definitions[0].Name, decoded.Definitions[0].Name)
}

func TestCompileSchemaSyntaxError(t *testing.T) {
	_, _, err := brineschema.CompileSchema("struct S { int a }")
	require.Error(t, err)
}

func TestCompileSchemaVerifyError(t *testing.T) {
	_, _, err := brineschema.CompileSchema("message M { int a = 1; int b = 1; }")
	require.Error(t, err)
}

func TestEncodeBinarySchemaMatchesCompile(t *testing.T) {
	s, encoded, err := brineschema.CompileSchema("struct A { byte x; }")
	require.NoError(t, err)

	reEncoded, err := brineschema.EncodeBinarySchema(s)
	require.NoError(t, err)
	assert.Equal(t, encoded, reEncoded)
}
