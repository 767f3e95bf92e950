//go:build amd64

package blake2b

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

func hasAVX2() bool  { return cpu.X86.HasAVX2 }
func hasSSE41() bool { return cpu.X86.HasSSE41 }

func rotl4(x [4]uint64, n int) (out [4]uint64) {
	for i := 0; i < 4; i++ {
		out[i] = x[(i+n)%4]
	}
	return out
}

func g4col(a, b, c, d *[4]uint64, x, y [4]uint64) {
	for i := 0; i < 4; i++ {
		a[i] += b[i] + x[i]
		d[i] = bits.RotateLeft64(d[i]^a[i], -32)
		c[i] += d[i]
		b[i] = bits.RotateLeft64(b[i]^c[i], -24)
		a[i] += b[i] + y[i]
		d[i] = bits.RotateLeft64(d[i]^a[i], -16)
		c[i] += d[i]
		b[i] = bits.RotateLeft64(b[i]^c[i], -63)
	}
}

// avx2CompressSingle computes the same result as portableCompress, but
// organized the way a real AVX2 kernel would lay it out in registers: the
// sixteen v-words held as four lane-grouped vectors (a, b, c, d), with the
// "mix the rows" half of each round expressed as a lane permutation
// (diagonalize) around the same column step, rather than as four separately
// indexed G calls. It exists to exercise the dispatcher's AVX2 path and is
// checked against portableCompress in the avx2/portable equivalence test.
func avx2CompressSingle(h *Words8, block *[BlockBytes]byte, countLo, countHi, lastBlock, lastNode uint64) {
	m := loadMessage(block)
	a := [4]uint64{h[0], h[1], h[2], h[3]}
	b := [4]uint64{h[4], h[5], h[6], h[7]}
	c := [4]uint64{IV[0], IV[1], IV[2], IV[3]}
	d := [4]uint64{IV[4] ^ countLo, IV[5] ^ countHi, IV[6] ^ lastBlock, IV[7] ^ lastNode}

	for r := 0; r < rounds; r++ {
		s := &sigma[r]
		mx := [4]uint64{m[s[0]], m[s[2]], m[s[4]], m[s[6]]}
		my := [4]uint64{m[s[1]], m[s[3]], m[s[5]], m[s[7]]}
		g4col(&a, &b, &c, &d, mx, my)

		b = rotl4(b, 1)
		c = rotl4(c, 2)
		d = rotl4(d, 3)

		mx = [4]uint64{m[s[8]], m[s[10]], m[s[12]], m[s[14]]}
		my = [4]uint64{m[s[9]], m[s[11]], m[s[13]], m[s[15]]}
		g4col(&a, &b, &c, &d, mx, my)

		b = rotl4(b, 3)
		c = rotl4(c, 2)
		d = rotl4(d, 1)
	}

	h[0] ^= a[0] ^ c[0]
	h[1] ^= a[1] ^ c[1]
	h[2] ^= a[2] ^ c[2]
	h[3] ^= a[3] ^ c[3]
	h[4] ^= b[0] ^ d[0]
	h[5] ^= b[1] ^ d[1]
	h[6] ^= b[2] ^ d[2]
	h[7] ^= b[3] ^ d[3]
}

func vectorCompress1Loop(h *Words8, input []byte, countLo, countHi, lastBlock, lastNode uint64, blocks, stride, bufferTail int) {
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
		avx2CompressSingle(h, block, countLo, countHi, lb, ln)
		offset += stride * BlockBytes
	}
}
