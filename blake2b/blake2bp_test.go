package blake2b

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumBPSingleZeroByte(t *testing.T) {
	got, err := SumBP([]byte{0x00}, NewParams())
	require.NoError(t, err)
	require.Equal(t,
		"a139280e72757b723e6473d5be59f36e9d50fc5cd7d4585cbc09804895a36c521242fb2789f85cb9e35491f31d4a6952f9d8e097aef94fa1ca0b12525721f03d",
		got.String())
}

func TestSumBP255SequentialBytes(t *testing.T) {
	input := make([]byte, 255)
	for i := range input {
		input[i] = byte(i)
	}
	got, err := SumBP(input, NewParams())
	require.NoError(t, err)
	require.Equal(t,
		"3f35c45d24fcfb4acca651076c08000e279ebbff37a1333ce19fd577202dbd24b58c514e36dd9ba64af4d78eea4e2dd13bc18d798887dd971376bcae0087e17e",
		got.String())
}

func TestSumBPIsDeterministicAcrossLengths(t *testing.T) {
	// Exercise every leaf/stride boundary around a handful of blocks.
	for n := 0; n < 6*BlockBytes; n += 37 {
		input := make([]byte, n)
		paintTestInput(input)
		a, err := SumBP(input, NewParams())
		require.NoError(t, err)
		b, err := SumBP(input, NewParams())
		require.NoError(t, err)
		require.Equal(t, a, b, "length %d", n)
	}
}

func TestSumBPRejectsInvalidParams(t *testing.T) {
	p := NewParams()
	p.HashLength = 0
	_, err := SumBP([]byte("x"), p)
	require.Error(t, err)
}
