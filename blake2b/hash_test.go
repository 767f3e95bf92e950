package blake2b

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashEqual(t *testing.T) {
	a := Sum512([]byte("alpha"))
	b := Sum512([]byte("alpha"))
	c := Sum512([]byte("beta"))

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestHashEqualDifferentLengths(t *testing.T) {
	p16 := NewParams()
	p16.HashLength = 16
	p32 := NewParams()
	p32.HashLength = 32

	s16, err := p16.NewState()
	require.NoError(t, err)
	s32, err := p32.NewState()
	require.NoError(t, err)

	s16.Update([]byte("same input"))
	s32.Update([]byte("same input"))

	require.False(t, s16.Finalize().Equal(s32.Finalize()))
}

func TestHashStringIsLowercaseHex(t *testing.T) {
	h := Sum512(nil)
	require.Len(t, h.String(), 128)
	require.Regexp(t, "^[0-9a-f]+$", h.String())
}
