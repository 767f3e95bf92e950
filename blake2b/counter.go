package blake2b

// counter128 is the 128-bit input-byte counter BLAKE2b mixes into its last
// two state words. Go has no native 128-bit integer, so it's kept as a
// low/high uint64 pair with carry propagated by hand on overflow, the same
// technique the reference Digest type uses for its 64-bit t0/t1 fields.
type counter128 struct {
	lo, hi uint64
}

func (c *counter128) add(n uint64) {
	old := c.lo
	c.lo += n
	if c.lo < old {
		c.hi++
	}
}
