package blake2b

import (
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
)

// Hash is a BLAKE2b digest of 1 to MaxHashLength bytes.
type Hash struct {
	bytes [MaxHashLength]byte
	n     uint8
}

func newHash(h *Words8, hashLength uint8) Hash {
	var out Hash
	var full [MaxHashLength]byte
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint64(full[i*8:], h[i])
	}
	copy(out.bytes[:], full[:])
	out.n = hashLength
	return out
}

// Bytes returns the digest as a slice of its configured length.
func (h Hash) Bytes() []byte {
	return h.bytes[:h.n]
}

// Len returns the digest length in bytes.
func (h Hash) Len() int {
	return int(h.n)
}

// String returns the digest as lowercase hex.
func (h Hash) String() string {
	return hex.EncodeToString(h.Bytes())
}

// Equal reports whether h and other hold the same digest, in time
// independent of the digest contents. Digests of different lengths are
// never equal; that comparison is also done without revealing, through
// timing, how much of a prefix the two share beyond the shorter length.
func (h Hash) Equal(other Hash) bool {
	if h.n != other.n {
		subtle.ConstantTimeCompare(h.Bytes(), other.bytes[:h.n])
		return false
	}
	return subtle.ConstantTimeCompare(h.Bytes(), other.Bytes()) == 1
}
