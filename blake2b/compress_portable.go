package blake2b

import (
	"encoding/binary"
	"math/bits"
)

// g is the BLAKE2b mixing function. a, b, c, d are indices into v selecting
// either a column or a diagonal of the 4x4 state; x and y are the two
// message words the message schedule assigns to this call.
func g(v *[16]uint64, a, b, c, d int, x, y uint64) {
	v[a] += v[b] + x
	v[d] = bits.RotateLeft64(v[d]^v[a], -32)
	v[c] += v[d]
	v[b] = bits.RotateLeft64(v[b]^v[c], -24)
	v[a] += v[b] + y
	v[d] = bits.RotateLeft64(v[d]^v[a], -16)
	v[c] += v[d]
	v[b] = bits.RotateLeft64(v[b]^v[c], -63)
}

func round(r int, m *[16]uint64, v *[16]uint64) {
	s := &sigma[r]
	g(v, 0, 4, 8, 12, m[s[0]], m[s[1]])
	g(v, 1, 5, 9, 13, m[s[2]], m[s[3]])
	g(v, 2, 6, 10, 14, m[s[4]], m[s[5]])
	g(v, 3, 7, 11, 15, m[s[6]], m[s[7]])

	g(v, 0, 5, 10, 15, m[s[8]], m[s[9]])
	g(v, 1, 6, 11, 12, m[s[10]], m[s[11]])
	g(v, 2, 7, 8, 13, m[s[12]], m[s[13]])
	g(v, 3, 4, 9, 14, m[s[14]], m[s[15]])
}

func loadMessage(block *[BlockBytes]byte) [16]uint64 {
	var m [16]uint64
	for i := range m {
		m[i] = binary.LittleEndian.Uint64(block[i*8:])
	}
	return m
}

// portableCompress runs one compression of h against block, given the
// 128-bit byte counter split into countLo/countHi and the lastBlock/
// lastNode finalization flags (each either 0 or all-ones).
func portableCompress(h *Words8, block *[BlockBytes]byte, countLo, countHi, lastBlock, lastNode uint64) {
	m := loadMessage(block)
	v := [16]uint64{
		h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7],
		IV[0], IV[1], IV[2], IV[3],
		IV[4] ^ countLo, IV[5] ^ countHi, IV[6] ^ lastBlock, IV[7] ^ lastNode,
	}
	for r := 0; r < rounds; r++ {
		round(r, &m, &v)
	}
	for i := 0; i < 8; i++ {
		h[i] ^= v[i] ^ v[i+8]
	}
}

// portableCompress1Loop compresses blocks consecutive BlockBytes-sized
// chunks of input, spaced stride blocks apart, into h. lastBlock/lastNode
// apply only to the final chunk in the loop. bufferTail, when non-zero,
// is the number of zero-padding bytes appended to that final chunk; it's
// subtracted from the low counter after the usual per-block increment but
// before the overflow carry is computed, so the embedded counter reflects
// genuine input bytes rather than padding.
func portableCompress1Loop(h *Words8, input []byte, countLo, countHi, lastBlock, lastNode uint64, blocks, stride, bufferTail int) {
	offset := 0
	for i := 0; i < blocks; i++ {
		old := countLo
		countLo += BlockBytes
		if i == blocks-1 {
			countLo -= uint64(bufferTail)
		}
		if countLo < old {
			countHi++
		}
		var lb, ln uint64
		if i == blocks-1 {
			lb, ln = lastBlock, lastNode
		}
		block := (*[BlockBytes]byte)(input[offset : offset+BlockBytes])
		portableCompress(h, block, countLo, countHi, lb, ln)
		offset += stride * BlockBytes
	}
}

func g2(v *[16]Words2, a, b, c, d int, x, y Words2) {
	for lane := 0; lane < 2; lane++ {
		va, vb, vc, vd := v[a][lane], v[b][lane], v[c][lane], v[d][lane]
		va += vb + x[lane]
		vd = bits.RotateLeft64(vd^va, -32)
		vc += vd
		vb = bits.RotateLeft64(vb^vc, -24)
		va += vb + y[lane]
		vd = bits.RotateLeft64(vd^va, -16)
		vc += vd
		vb = bits.RotateLeft64(vb^vc, -63)
		v[a][lane], v[b][lane], v[c][lane], v[d][lane] = va, vb, vc, vd
	}
}

func round2(r int, m0, m1 *[16]uint64, v *[16]Words2) {
	s := &sigma[r]
	mw := func(i int) Words2 { return Words2{m0[i], m1[i]} }
	g2(v, 0, 4, 8, 12, mw(int(s[0])), mw(int(s[1])))
	g2(v, 1, 5, 9, 13, mw(int(s[2])), mw(int(s[3])))
	g2(v, 2, 6, 10, 14, mw(int(s[4])), mw(int(s[5])))
	g2(v, 3, 7, 11, 15, mw(int(s[6])), mw(int(s[7])))

	g2(v, 0, 5, 10, 15, mw(int(s[8])), mw(int(s[9])))
	g2(v, 1, 6, 11, 12, mw(int(s[10])), mw(int(s[11])))
	g2(v, 2, 7, 8, 13, mw(int(s[12])), mw(int(s[13])))
	g2(v, 3, 4, 9, 14, mw(int(s[14])), mw(int(s[15])))
}

// compress2Transposed runs one compression step across two lanes at once,
// each lane holding one independent hash's state words, message block, and
// counter. It computes exactly what two separate portableCompress calls
// would, zipped together word-by-word.
func compress2Transposed(state *[8]Words2, block0, block1 *[BlockBytes]byte, countLow, countHigh, lastBlock, lastNode *Words2) {
	m0 := loadMessage(block0)
	m1 := loadMessage(block1)
	var v [16]Words2
	copy(v[0:8], state[:])
	for i := 0; i < 4; i++ {
		v[8+i] = Words2{IV[i], IV[i]}
	}
	v[12] = Words2{IV[4] ^ countLow[0], IV[4] ^ countLow[1]}
	v[13] = Words2{IV[5] ^ countHigh[0], IV[5] ^ countHigh[1]}
	v[14] = Words2{IV[6] ^ lastBlock[0], IV[6] ^ lastBlock[1]}
	v[15] = Words2{IV[7] ^ lastNode[0], IV[7] ^ lastNode[1]}
	for r := 0; r < rounds; r++ {
		round2(r, &m0, &m1, &v)
	}
	for i := 0; i < 8; i++ {
		state[i][0] ^= v[i][0] ^ v[i+8][0]
		state[i][1] ^= v[i][1] ^ v[i+8][1]
	}
}

func compress2Loop(state0, state1 *Words8, input0, input1 []byte, countLow, countHigh, lastBlock, lastNode *Words2, blocks, stride int, bufferTail *Words2) {
	t := transpose2(state0, state1)
	cl, ch := *countLow, *countHigh
	off0, off1 := 0, 0
	for i := 0; i < blocks; i++ {
		for lane := 0; lane < 2; lane++ {
			old := cl[lane]
			cl[lane] += BlockBytes
			if i == blocks-1 {
				cl[lane] -= uint64(bufferTail[lane])
			}
			if cl[lane] < old {
				ch[lane]++
			}
		}
		var lb, ln Words2
		if i == blocks-1 {
			lb, ln = *lastBlock, *lastNode
		}
		b0 := (*[BlockBytes]byte)(input0[off0 : off0+BlockBytes])
		b1 := (*[BlockBytes]byte)(input1[off1 : off1+BlockBytes])
		compress2Transposed(&t, b0, b1, &cl, &ch, &lb, &ln)
		off0 += stride * BlockBytes
		off1 += stride * BlockBytes
	}
	untranspose2(&t, state0, state1)
}

func g4(v *[16]Words4, a, b, c, d int, x, y Words4) {
	for lane := 0; lane < 4; lane++ {
		va, vb, vc, vd := v[a][lane], v[b][lane], v[c][lane], v[d][lane]
		va += vb + x[lane]
		vd = bits.RotateLeft64(vd^va, -32)
		vc += vd
		vb = bits.RotateLeft64(vb^vc, -24)
		va += vb + y[lane]
		vd = bits.RotateLeft64(vd^va, -16)
		vc += vd
		vb = bits.RotateLeft64(vb^vc, -63)
		v[a][lane], v[b][lane], v[c][lane], v[d][lane] = va, vb, vc, vd
	}
}

func round4(r int, m *[4]*[16]uint64, v *[16]Words4) {
	s := &sigma[r]
	mw := func(i int) Words4 { return Words4{m[0][i], m[1][i], m[2][i], m[3][i]} }
	g4(v, 0, 4, 8, 12, mw(int(s[0])), mw(int(s[1])))
	g4(v, 1, 5, 9, 13, mw(int(s[2])), mw(int(s[3])))
	g4(v, 2, 6, 10, 14, mw(int(s[4])), mw(int(s[5])))
	g4(v, 3, 7, 11, 15, mw(int(s[6])), mw(int(s[7])))

	g4(v, 0, 5, 10, 15, mw(int(s[8])), mw(int(s[9])))
	g4(v, 1, 6, 11, 12, mw(int(s[10])), mw(int(s[11])))
	g4(v, 2, 7, 8, 13, mw(int(s[12])), mw(int(s[13])))
	g4(v, 3, 4, 9, 14, mw(int(s[14])), mw(int(s[15])))
}

func compress4Transposed(state *[8]Words4, blocks *[4]*[BlockBytes]byte, countLow, countHigh, lastBlock, lastNode *Words4) {
	var m [4]*[16]uint64
	var loaded [4][16]uint64
	for i := 0; i < 4; i++ {
		loaded[i] = loadMessage(blocks[i])
		m[i] = &loaded[i]
	}
	var v [16]Words4
	copy(v[0:8], state[:])
	for i := 0; i < 4; i++ {
		v[8+i] = Words4{IV[i], IV[i], IV[i], IV[i]}
	}
	for lane := 0; lane < 4; lane++ {
		v[12][lane] = IV[4] ^ countLow[lane]
		v[13][lane] = IV[5] ^ countHigh[lane]
		v[14][lane] = IV[6] ^ lastBlock[lane]
		v[15][lane] = IV[7] ^ lastNode[lane]
	}
	for r := 0; r < rounds; r++ {
		round4(r, &m, &v)
	}
	for i := 0; i < 8; i++ {
		for lane := 0; lane < 4; lane++ {
			state[i][lane] ^= v[i][lane] ^ v[i+8][lane]
		}
	}
}

func compress4Loop(state0, state1, state2, state3 *Words8, inputs *[4][]byte, countLow, countHigh, lastBlock, lastNode *Words4, blocks, stride int, bufferTail *Words4) {
	t := transpose4(state0, state1, state2, state3)
	cl, ch := *countLow, *countHigh
	off := [4]int{}
	for i := 0; i < blocks; i++ {
		for lane := 0; lane < 4; lane++ {
			old := cl[lane]
			cl[lane] += BlockBytes
			if i == blocks-1 {
				cl[lane] -= uint64(bufferTail[lane])
			}
			if cl[lane] < old {
				ch[lane]++
			}
		}
		var lb, ln Words4
		if i == blocks-1 {
			lb, ln = *lastBlock, *lastNode
		}
		var blocks4 [4]*[BlockBytes]byte
		for lane := 0; lane < 4; lane++ {
			blocks4[lane] = (*[BlockBytes]byte)(inputs[lane][off[lane] : off[lane]+BlockBytes])
		}
		compress4Transposed(&t, &blocks4, &cl, &ch, &lb, &ln)
		for lane := 0; lane < 4; lane++ {
			off[lane] += stride * BlockBytes
		}
	}
	untranspose4(&t, state0, state1, state2, state3)
}
