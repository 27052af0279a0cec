package bb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eriksen/brineschema/bb"
)

func TestWriteVarUint32(t *testing.T) {
	w := bb.NewWriter()
	w.WriteVarUint32(131069)
	assert.Equal(t, []byte{253, 255, 7}, w.Bytes())
}

func TestReadVarUint32(t *testing.T) {
	r := bb.NewReader([]byte{253, 255, 7})
	v, err := r.ReadVarUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(131069), v)
}

func TestWriteVarInt32(t *testing.T) {
	tcs := map[string]struct {
		in   int32
		want []byte
	}{
		"minus one": {-1, []byte{1}},
		"one":       {1, []byte{2}},
		"-65535":    {-65535, []byte{253, 255, 7}},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			w := bb.NewWriter()
			w.WriteVarInt32(tc.in)
			assert.Equal(t, tc.want, w.Bytes())
		})
	}
}

func TestVarInt32RoundTrip(t *testing.T) {
	for _, v := range []int32{0, -1, 1, -2, 2, -64, 64, 128, -129, -65535, 65535, -2147483647, 2147483647, -2147483648} {
		w := bb.NewWriter()
		w.WriteVarInt32(v)
		r := bb.NewReader(w.Bytes())
		got, err := r.ReadVarInt32()
		require.NoError(t, err)
		assert.Equal(t, v, got, "round trip of %d", v)
	}
}

func TestVarUint64Cap(t *testing.T) {
	w := bb.NewWriter()
	w.WriteVarUint64(^uint64(0))
	r := bb.NewReader(w.Bytes())
	got, err := r.ReadVarUint64()
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), got)
	assert.LessOrEqual(t, w.Len(), 9)
}

func TestWriteVarFloat(t *testing.T) {
	tcs := map[string]struct {
		in   float32
		want []byte
	}{
		"123.456": {123.456, []byte{133, 242, 210, 237}},
		"zero":    {0.0, []byte{0}},
		"denormal flush": {1e-40, []byte{0}},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			w := bb.NewWriter()
			w.WriteVarFloat(tc.in)
			assert.Equal(t, tc.want, w.Bytes())
		})
	}
}

func TestReadVarFloatZeroByte(t *testing.T) {
	r := bb.NewReader([]byte{0})
	v, err := r.ReadVarFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(0.0), v)
}

func TestVarFloatRoundTrip(t *testing.T) {
	w := bb.NewWriter()
	w.WriteVarFloat(123.456)
	r := bb.NewReader(w.Bytes())
	got, err := r.ReadVarFloat()
	require.NoError(t, err)
	assert.InDelta(t, 123.456, got, 0.001)
}

func TestWriteString(t *testing.T) {
	w := bb.NewWriter()
	w.WriteString("🍕")
	assert.Equal(t, []byte{240, 159, 141, 149, 0}, w.Bytes())
}

func TestReadStringLossy(t *testing.T) {
	// 0xff is never valid UTF-8; the decode must substitute U+FFFD rather
	// than error.
	r := bb.NewReader([]byte{'a', 0xff, 'b', 0})
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "a�b", s)
}

func TestReadBoolInvalid(t *testing.T) {
	r := bb.NewReader([]byte{2})
	_, err := r.ReadBool()
	require.ErrorIs(t, err, bb.ErrShortRead)
}

func TestReadPastEnd(t *testing.T) {
	r := bb.NewReader([]byte{1})
	_, err := r.ReadByte()
	require.NoError(t, err)
	_, err = r.ReadByte()
	require.ErrorIs(t, err, bb.ErrShortRead)
}

func TestReadBytesExact(t *testing.T) {
	r := bb.NewReader([]byte{1, 2, 3, 4, 5})
	got, err := r.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, 2, r.Remaining())

	_, err = r.ReadBytes(3)
	require.ErrorIs(t, err, bb.ErrShortRead)
}
