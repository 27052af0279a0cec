package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eriksen/brineschema/binschema"
	"github.com/eriksen/brineschema/catalog"
	"github.com/eriksen/brineschema/lexer"
	"github.com/eriksen/brineschema/parser"
	"github.com/eriksen/brineschema/schema"
	"github.com/eriksen/brineschema/verify"
)

func encodeIDL(t *testing.T, text string) []byte {
	t.Helper()
	toks, err := lexer.Tokenize(text)
	require.NoError(t, err)
	s, err := parser.Parse(toks)
	require.NoError(t, err)
	require.NoError(t, verify.Verify(s))
	b, err := binschema.Encode(s)
	require.NoError(t, err)
	return b
}

func TestLoadAllIndexesByPackage(t *testing.T) {
	alpha := encodeIDL(t, `package alpha; struct A { byte x; }`)
	beta := encodeIDL(t, `package beta; struct B { int y; }`)

	c := catalog.NewCatalog()
	require.NoError(t, c.LoadAll(context.Background(), [][]byte{alpha, beta}))
	assert.Equal(t, 2, c.Len())

	entry, ok := c.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "A", entry.Schema.Definitions[0].Name)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestLoadAllRejectsDuplicatePackage(t *testing.T) {
	first := encodeIDL(t, `package dup; struct A { byte x; }`)
	second := encodeIDL(t, `package dup; struct B { byte y; }`)

	c := catalog.NewCatalog()
	err := c.LoadAll(context.Background(), [][]byte{first, second})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadAllRejectsDuplicatePackageWithinBatchAtomically(t *testing.T) {
	alpha := encodeIDL(t, `package alpha; struct A { byte x; }`)
	beta := encodeIDL(t, `package beta; struct B { byte y; }`)
	dupOfAlpha := encodeIDL(t, `package alpha; struct C { byte z; }`)

	c := catalog.NewCatalog()
	err := c.LoadAll(context.Background(), [][]byte{alpha, beta, dupOfAlpha})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len(), "a conflict anywhere in the batch must leave the catalog untouched")

	_, ok := c.Lookup("alpha")
	assert.False(t, ok)
	_, ok = c.Lookup("beta")
	assert.False(t, ok)
}

func TestLoadAllRejectsPackageAlreadyResident(t *testing.T) {
	first := encodeIDL(t, `package dup; struct A { byte x; }`)
	second := encodeIDL(t, `package dup; struct B { byte y; }`)

	c := catalog.NewCatalog()
	require.NoError(t, c.LoadAll(context.Background(), [][]byte{first}))
	require.Equal(t, 1, c.Len())

	err := c.LoadAll(context.Background(), [][]byte{second})
	require.Error(t, err)
	assert.Equal(t, 1, c.Len(), "a conflict with an already-loaded package must not mutate the catalog")
}

func TestLoadAllRejectsMalformedPayload(t *testing.T) {
	c := catalog.NewCatalog()
	err := c.LoadAll(context.Background(), [][]byte{{0xff, 0xff, 0xff}})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadAllReportsTrailingBytes(t *testing.T) {
	payload := encodeIDL(t, `package padded; struct P { byte x; }`)
	payload = append(payload, 0x01, 0x02)

	c := catalog.NewCatalog()
	require.NoError(t, c.LoadAll(context.Background(), [][]byte{payload}))

	entry, ok := c.Lookup("padded")
	require.True(t, ok)
	assert.Equal(t, 2, entry.TrailingBytes)
}

func TestLoadAllBuildsUsableCodec(t *testing.T) {
	payload := encodeIDL(t, `package demo; struct Point { int x; int y; }`)

	c := catalog.NewCatalog()
	require.NoError(t, c.LoadAll(context.Background(), [][]byte{payload}))

	entry, ok := c.Lookup("demo")
	require.True(t, ok)
	require.NotNil(t, entry.Codec)
	assert.Equal(t, schema.KindStruct, entry.Schema.Definitions[0].Kind)
}
