package blake2b

import "encoding/binary"

// Params is a validated, mutable configuration for a BLAKE2b hash. The zero
// value is not ready to use; start from NewParams, which fills in the
// defaults required by the BLAKE2b parameter block (fanout and max depth
// default to 1, not 0).
//
// Params is typically built up with direct field assignment and then
// consumed once by NewState, HashManyJob, or BLAKE2bp's leaf/root setup.
// Validate runs automatically wherever Params is consumed; call it directly
// only if you want to catch a bad configuration before that point.
type Params struct {
	HashLength int
	Key        []byte
	Salt       []byte
	Personal   []byte

	// Fanout, MaxDepth, MaxLeafLength, NodeOffset, NodeDepth, and
	// InnerHashLength configure BLAKE2b's tree mode. Regular, sequential
	// hashing (the default) uses Fanout 1 and MaxDepth 1 with everything
	// else zero. BLAKE2bp drives these directly; see SumBP.
	Fanout          uint8
	MaxDepth        uint8
	MaxLeafLength   uint32
	NodeOffset      uint64
	NodeDepth       uint8
	InnerHashLength int
	LastNode        bool
}

// NewParams returns a Params configured for plain, unkeyed, 64-byte BLAKE2b
// hashing. Callers assign whichever fields they need before consuming it.
func NewParams() *Params {
	return &Params{
		HashLength: MaxHashLength,
		Fanout:     1,
		MaxDepth:   1,
	}
}

// Validate reports a ConfigurationError if any field of p is out of the
// range BLAKE2b's parameter block can encode.
func (p *Params) Validate() error {
	if p.HashLength < 1 || p.HashLength > MaxHashLength {
		return configErr("HashLength", p.HashLength)
	}
	if len(p.Key) > MaxKeyLength {
		return configErr("Key length", len(p.Key))
	}
	if len(p.Salt) > MaxSaltLength {
		return configErr("Salt length", len(p.Salt))
	}
	if len(p.Personal) > MaxPersonalLength {
		return configErr("Personal length", len(p.Personal))
	}
	if p.MaxDepth == 0 {
		return configErr("MaxDepth", p.MaxDepth)
	}
	if p.InnerHashLength < 0 || p.InnerHashLength > MaxHashLength {
		return configErr("InnerHashLength", p.InnerHashLength)
	}
	return nil
}

// keyBlock returns the key, zero-padded to one full compression block. It's
// absorbed as ordinary input whenever a key is set, which is why it's sized
// to BlockBytes rather than MaxKeyLength.
func (p *Params) keyBlock() [BlockBytes]byte {
	var b [BlockBytes]byte
	copy(b[:], p.Key)
	return b
}

// initialWords computes the eight chaining-value words a state begins with,
// derived by XORing the IV with the serialized parameter block exactly as
// BLAKE2b's key schedule (RFC 7693 section 2.5) describes.
func (p *Params) initialWords() Words8 {
	var block [64]byte
	block[0] = byte(p.HashLength)
	block[1] = byte(len(p.Key))
	block[2] = p.Fanout
	block[3] = p.MaxDepth
	binary.LittleEndian.PutUint32(block[4:], p.MaxLeafLength)
	binary.LittleEndian.PutUint64(block[8:], p.NodeOffset)
	block[16] = p.NodeDepth
	block[17] = byte(p.InnerHashLength)
	// block[18:32] is reserved and stays zero.
	copy(block[32:48], p.Salt)
	copy(block[48:64], p.Personal)

	var h Words8
	for i := 0; i < 8; i++ {
		h[i] = IV[i] ^ binary.LittleEndian.Uint64(block[i*8:])
	}
	return h
}

// NewState validates p and returns a freshly initialized State.
func (p *Params) NewState() (*State, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		h:          p.initialWords(),
		lastNode:   p.LastNode,
		hashLength: uint8(p.HashLength),
		impl:       Detect(),
	}
	if len(p.Key) > 0 {
		kb := p.keyBlock()
		s.Update(kb[:])
	}
	return s, nil
}
