package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eriksen/brineschema/brineerr"
	"github.com/eriksen/brineschema/lexer"
)

func TestTokenizeSimple(t *testing.T) {
	toks, err := lexer.Tokenize("int x = 10;")
	require.NoError(t, err)

	kinds := make([]lexer.Kind, len(toks))
	texts := make([]string, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
		texts[i] = tok.Text
	}

	assert.Equal(t, []lexer.Kind{
		lexer.KindIdent, lexer.KindIdent, lexer.KindEquals, lexer.KindInt, lexer.KindSemicolon, lexer.KindEOF,
	}, kinds)
	assert.Equal(t, []string{"int", "x", "=", "10", ";", ""}, texts)
	assert.Equal(t, 12, toks[len(toks)-1].Pos.Column)
}

func TestTokenizeDeprecatedTag(t *testing.T) {
	toks, err := lexer.Tokenize("[deprecated]")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.KindDeprecated, toks[0].Kind)
	assert.Equal(t, "[deprecated]", toks[0].Text)
}

func TestTokenizeReservedNames(t *testing.T) {
	toks, err := lexer.Tokenize("ByteBuffer package")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "ByteBuffer", toks[0].Text)
	assert.Equal(t, "package", toks[1].Text)
}

func TestTokenizeSkipsLineComments(t *testing.T) {
	toks, err := lexer.Tokenize("int x; // trailing comment\nint y;")
	require.NoError(t, err)
	require.Len(t, toks, 7) // int x ; int y ; EOF
}

func TestTokenizeUnexpectedChar(t *testing.T) {
	_, err := lexer.Tokenize("int x = 10 @")
	require.Error(t, err)
	assert.ErrorIs(t, err, brineerr.ErrSyntax)
}

func TestTokenizeNegativeInteger(t *testing.T) {
	toks, err := lexer.Tokenize("-65535")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "-65535", toks[0].Text)
}
