package blake2b

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectIsMemoized(t *testing.T) {
	a := Detect()
	b := Detect()
	require.Equal(t, a, b)
}

func TestImplementationDegree(t *testing.T) {
	require.Equal(t, 1, Portable.degree())
}
