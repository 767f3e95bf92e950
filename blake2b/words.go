package blake2b

import "unsafe"

// Words2 packs the same-numbered 64-bit state word from two independent
// BLAKE2b states, so a 2-way compression kernel can process both lanes with
// one pass of scalar arithmetic per step instead of two.
type Words2 [2]uint64

// Words4 is the 4-lane counterpart of Words2.
type Words4 [4]uint64

// Words8 is the full eight-word BLAKE2b chaining value.
type Words8 [8]uint64

// Halves splits w into its low and high Words2 lanes, aliasing the same
// backing storage. This is sound because Words4 is laid out as a flat array
// of two adjacent uint64 pairs, so the pointer arithmetic below never leaves
// the bounds of w.
func (w *Words4) Halves() (lo, hi *Words2) {
	return (*Words2)(unsafe.Pointer(&w[0])), (*Words2)(unsafe.Pointer(&w[2]))
}

// Halves splits w into its low and high Words4 lanes, aliasing storage.
func (w *Words8) Halves() (lo, hi *Words4) {
	return (*Words4)(unsafe.Pointer(&w[0])), (*Words4)(unsafe.Pointer(&w[4]))
}

func transpose2(a, b *Words8) [8]Words2 {
	var t [8]Words2
	for i := 0; i < 8; i++ {
		t[i] = Words2{a[i], b[i]}
	}
	return t
}

func untranspose2(t *[8]Words2, a, b *Words8) {
	for i := 0; i < 8; i++ {
		a[i], b[i] = t[i][0], t[i][1]
	}
}

func transpose4(a, b, c, d *Words8) [8]Words4 {
	var t [8]Words4
	for i := 0; i < 8; i++ {
		t[i] = Words4{a[i], b[i], c[i], d[i]}
	}
	return t
}

func untranspose4(t *[8]Words4, a, b, c, d *Words8) {
	for i := 0; i < 8; i++ {
		a[i], b[i], c[i], d[i] = t[i][0], t[i][1], t[i][2], t[i][3]
	}
}
