package blake2b

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInitialWordsMatchesParameterBlockFormula checks the first chaining
// word against the hand-computed value for a 64-byte, unkeyed, fanout-1,
// depth-1 configuration: h[0] = IV[0] ^ 0x01010040, where 0x40 is the hash
// length, 0x00 the key length, and 0x01/0x01 the fanout/depth bytes.
func TestInitialWordsMatchesParameterBlockFormula(t *testing.T) {
	p := NewParams()
	words := p.initialWords()
	require.Equal(t, IV[0]^0x0000000001010040, words[0])
}

func TestMaxDepthZeroRejected(t *testing.T) {
	p := NewParams()
	p.MaxDepth = 0
	require.Error(t, p.Validate())
}

func TestInnerHashLengthBounds(t *testing.T) {
	p := NewParams()
	p.InnerHashLength = MaxHashLength + 1
	require.Error(t, p.Validate())
}

func TestNewStatePropagatesValidationError(t *testing.T) {
	p := NewParams()
	p.HashLength = 100
	_, err := p.NewState()
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}
