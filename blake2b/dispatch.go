package blake2b

import "sync"

// Implementation identifies a compression backend. The zero value,
// Portable, is always safe to use; Detect picks the fastest one the
// running CPU actually supports.
type Implementation int

const (
	Portable Implementation = iota
	sse41Impl
	avx2Impl
)

func (im Implementation) String() string {
	switch im {
	case avx2Impl:
		return "avx2"
	case sse41Impl:
		return "sse4.1"
	default:
		return "portable"
	}
}

var (
	detectOnce sync.Once
	detected   Implementation
)

// Detect returns the fastest Implementation the running CPU supports. It
// probes the CPU once per process and memoizes the result; concurrent
// callers racing to populate the cache all observe the same answer because
// feature detection is a pure function of the hardware, not of call order.
func Detect() Implementation {
	detectOnce.Do(func() {
		switch {
		case hasAVX2():
			detected = avx2Impl
		case hasSSE41():
			detected = sse41Impl
		default:
			detected = Portable
		}
	})
	return detected
}

// degree is the widest batch of independent states this implementation can
// drive through one transposed compression call.
func (im Implementation) degree() int {
	switch im {
	case avx2Impl:
		return 4
	case sse41Impl:
		return 2
	default:
		return 1
	}
}

func (im Implementation) compress1Loop(h *Words8, input []byte, countLo, countHi, lastBlock, lastNode uint64, blocks, stride, bufferTail int) {
	if im == avx2Impl {
		vectorCompress1Loop(h, input, countLo, countHi, lastBlock, lastNode, blocks, stride, bufferTail)
		return
	}
	portableCompress1Loop(h, input, countLo, countHi, lastBlock, lastNode, blocks, stride, bufferTail)
}

// compress2Loop always runs the transposed lane loop: BLAKE2bsimd has no
// hand-written SSE4.1 assembly, so there's nothing faster to dispatch to
// for the 2-way kernel than the portable transposed implementation, on any
// detected backend.
func (im Implementation) compress2Loop(state0, state1 *Words8, input0, input1 []byte, countLow, countHigh, lastBlock, lastNode *Words2, blocks, stride int, bufferTail *Words2) {
	compress2Loop(state0, state1, input0, input1, countLow, countHigh, lastBlock, lastNode, blocks, stride, bufferTail)
}

// compress4Loop follows the composition rule from the reference design: a
// true 4-wide call when AVX2 is available, otherwise two sequential 2-wide
// calls over the split halves when only SSE4.1 is, otherwise the portable
// transposed loop.
func (im Implementation) compress4Loop(state0, state1, state2, state3 *Words8, inputs *[4][]byte, countLow, countHigh, lastBlock, lastNode *Words4, blocks, stride int, bufferTail *Words4) {
	if im == sse41Impl {
		cl0, cl1 := countLow.Halves()
		ch0, ch1 := countHigh.Halves()
		lb0, lb1 := lastBlock.Halves()
		ln0, ln1 := lastNode.Halves()
		bt0, bt1 := bufferTail.Halves()
		im.compress2Loop(state0, state1, inputs[0], inputs[1], cl0, ch0, lb0, ln0, blocks, stride, bt0)
		im.compress2Loop(state2, state3, inputs[2], inputs[3], cl1, ch1, lb1, ln1, blocks, stride, bt1)
		return
	}
	compress4Loop(state0, state1, state2, state3, inputs, countLow, countHigh, lastBlock, lastNode, blocks, stride, bufferTail)
}
