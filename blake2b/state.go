package blake2b

// State is an incremental BLAKE2b hasher. Create one with Params.NewState
// or New, feed it input with Update or Write, and call Finalize to read the
// digest. Finalize never mutates the State, so it can be called more than
// once, or interleaved with further Update calls, without corrupting
// anything already absorbed.
type State struct {
	h          Words8
	buf        [BlockBytes]byte
	buflen     uint8
	count      counter128
	lastNode   bool
	hashLength uint8
	impl       Implementation
}

// New returns a State configured for plain, unkeyed, 64-byte BLAKE2b
// hashing. It's equivalent to NewParams().NewState(), which can't fail.
func New() *State {
	s, _ := NewParams().NewState()
	return s
}

// Sum512 hashes data in one call using default parameters.
func Sum512(data []byte) Hash {
	return New().Update(data).Finalize()
}

func (s *State) compressBlock(block []byte, lastBlock, lastNodeFlag bool) {
	var lb, ln uint64
	if lastBlock {
		lb = ^uint64(0)
	}
	if lastNodeFlag {
		ln = ^uint64(0)
	}
	s.impl.compress1Loop(&s.h, block, s.count.lo, s.count.hi, lb, ln, 1, 1, 0)
	s.count.add(uint64(len(block)))
}

// compressBufferIfPossible tops up s.buf from the front of *input. If doing
// so fills the buffer and further input remains, it compresses that block
// immediately and empties the buffer; *input is left holding whatever
// wasn't absorbed into the buffer. It's the buffering half of Update,
// factored out so the hash-many engine's update_many path can reuse it
// before handing the remaining full blocks off to the batched scheduler.
func (s *State) compressBufferIfPossible(input *[]byte) {
	if s.buflen == 0 {
		return
	}
	take := BlockBytes - int(s.buflen)
	if take > len(*input) {
		take = len(*input)
	}
	copy(s.buf[s.buflen:], (*input)[:take])
	s.buflen += uint8(take)
	*input = (*input)[take:]
	if len(*input) > 0 {
		s.compressBlock(s.buf[:], false, false)
		s.buflen = 0
	}
}

// Update absorbs input into the hash. It returns s so calls can be chained.
func (s *State) Update(input []byte) *State {
	s.compressBufferIfPossible(&input)
	for len(input) > BlockBytes {
		s.compressBlock(input[:BlockBytes], false, false)
		input = input[BlockBytes:]
	}
	if len(input) > 0 {
		copy(s.buf[s.buflen:], input)
		s.buflen += uint8(len(input))
	}
	return s
}

// Write implements io.Writer by delegating to Update; it never returns an
// error.
func (s *State) Write(p []byte) (int, error) {
	s.Update(p)
	return len(p), nil
}

// SetLastNode marks s as the final node in a tree hash, changing the flag
// BLAKE2b mixes into its last compression. It has the same effect as
// setting Params.LastNode before the State was created.
func (s *State) SetLastNode(lastNode bool) *State {
	s.lastNode = lastNode
	return s
}

// Count returns the number of input bytes absorbed so far, including
// whatever is currently buffered and not yet compressed.
func (s *State) Count() uint64 {
	return s.count.lo + uint64(s.buflen)
}

// CountHigh returns the upper 64 bits of the 128-bit input byte counter.
func (s *State) CountHigh() uint64 {
	return s.count.hi
}

// Finalize returns the digest of everything absorbed so far. It operates on
// a local copy of the chaining state, so it does not disturb s: Update may
// still be called afterward, and Finalize may be called again.
func (s *State) Finalize() Hash {
	hCopy := s.h
	var block [BlockBytes]byte
	copy(block[:], s.buf[:s.buflen])
	bufferTail := BlockBytes - int(s.buflen)
	var lastNode uint64
	if s.lastNode {
		lastNode = ^uint64(0)
	}
	s.impl.compress1Loop(&hCopy, block[:], s.count.lo, s.count.hi, ^uint64(0), lastNode, 1, 1, bufferTail)
	return newHash(&hCopy, s.hashLength)
}

// Size returns the number of bytes Finalize will return, for hash.Hash
// compatibility.
func (s *State) Size() int { return int(s.hashLength) }

// BlockSize returns BLAKE2b's compression block size.
func (s *State) BlockSize() int { return BlockBytes }

// Reset always panics. Unlike a keyless hash, a BLAKE2b State can carry a
// key and tree parameters that were only available at construction time
// through Params; there's no value to reset back to, so satisfying
// hash.Hash's Reset method here would silently produce a hash with the
// wrong parameters.
func (s *State) Reset() {
	panic("blake2b: State cannot be reset; construct a new one from Params instead")
}
