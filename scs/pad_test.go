package scs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadBlockAlignedAddsNothing(t *testing.T) {
	buf := make([]byte, 32, 64)
	for i := range buf {
		buf[i] = 0xee
	}
	out, err := pad(16, buf)
	require.NoError(t, err)
	assert.Len(t, out, 32)
}

func TestPadZeroFills(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{0, 0},
		{1, 16},
		{15, 16},
		{17, 32},
		{31, 32},
	}
	for _, tc := range cases {
		buf := make([]byte, tc.size, 64)
		for i := range buf {
			buf[i] = 0xee
		}
		// Dirty the spare capacity to prove pad clears it.
		spare := buf[:cap(buf)]
		for i := tc.size; i < len(spare); i++ {
			spare[i] = 0xff
		}

		out, err := pad(16, buf)
		require.NoError(t, err)
		assert.Len(t, out, tc.want, "size %d", tc.size)
		for _, b := range out[tc.size:] {
			assert.Zero(t, b)
		}
	}
}

func TestPadCapacityExceeded(t *testing.T) {
	buf := make([]byte, 17, 20)
	_, err := pad(16, buf)
	assert.ErrorIs(t, err, ErrMem)
}

func TestUnpadRoundTrip(t *testing.T) {
	bodies := [][]byte{
		{},
		{0x01},
		{0x00, 0x00, 0x00}, // trailing zeros survive
		[]byte("twelve bytes"),
		make([]byte, 16),
	}
	for _, body := range bodies {
		buf := make([]byte, lengthMarkerSize, frameCapacity(len(body), 16))
		buf = append(buf, body...)
		putLength(buf, len(body))
		buf, err := pad(16, buf)
		require.NoError(t, err)
		assert.Zero(t, len(buf)%16)

		got, err := unpad(buf)
		require.NoError(t, err)
		assert.Equal(t, body, got)
	}
}

func TestUnpadRejectsBadFraming(t *testing.T) {
	_, err := unpad([]byte{0, 0})
	assert.ErrorIs(t, err, ErrMalformedToken)

	// Marker larger than the buffer.
	buf := make([]byte, 16)
	putLength(buf, 13)
	_, err = unpad(buf)
	assert.ErrorIs(t, err, ErrMalformedToken)

	// Non-zero fill.
	buf = make([]byte, 16)
	putLength(buf, 2)
	buf[10] = 1
	_, err = unpad(buf)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestAtomsReset(t *testing.T) {
	var nilAtoms *Atoms
	assert.NotPanics(t, nilAtoms.Reset)

	a := NewAtoms()
	a.Reset()
	assert.Equal(t, InvalidTime, a.ATime)

	a.alloc(16, 20, 64)
	a.Data = append(a.Data, []byte("secret state")...)
	backing := a.Data[:cap(a.Data)]
	iv := a.IV
	a.ATime = 1234
	for i := range iv {
		iv[i] = 0xaa
	}

	a.Reset()
	assert.Nil(t, a.Data)
	assert.Empty(t, a.IV)
	assert.Empty(t, a.Tag)
	assert.Equal(t, InvalidTime, a.ATime)
	assert.Equal(t, make([]byte, 64), backing)
	assert.Equal(t, make([]byte, 16), iv)
}
