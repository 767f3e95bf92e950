// Package blake2bsimd implements BLAKE2b and its fixed-depth tree variant
// BLAKE2bp, along with a hash-many engine that drives several independent
// hashes through a shared compression kernel.
//
// BLAKE2b produces digests of any size between 1 and 64 bytes and supports
// keying, salting, and personalization through Params. BLAKE2bp hashes its
// input across four leaves and a root node; the four leaves are hashed
// concurrently, each with its own incremental state.
//
// The package picks the fastest compression implementation the running CPU
// supports (AVX2, then SSE4.1, then a portable fallback) once, the first
// time it's needed, and reuses that choice for the life of the process.
package blake2bsimd
