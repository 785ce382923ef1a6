package blake3

import (
	"encoding/binary"
	"math/bits"
)

// Constants and algorithms taken from the BLAKE3 specification.
// https://github.com/BLAKE3-team/BLAKE3-specs/raw/master/blake3.pdf

const (
	// BlockSizeBytes is the size of the message blocks that are
	// provided to the compression function.
	BlockSizeBytes = 64
	// ChunkSizeBytes is the size of the chunks that form the leaves
	// of BLAKE3's Merkle tree.
	ChunkSizeBytes = 1024
	// HashSizeBytes is the default output size, which is also the
	// size of a chaining value.
	HashSizeBytes = 32

	// Values for input d of the BLAKE3 compression function, as
	// specified in table 3 on page 6.
	flagChunkStart uint32 = 1 << 0
	flagChunkEnd   uint32 = 1 << 1
	flagParent     uint32 = 1 << 2
	flagRoot       uint32 = 1 << 3
)

// Initialization vectors, as specified in table 1 on page 5.
var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// Message word permutation applied between rounds, as specified in
// table 2 on page 6.
var messagePermutation = [16]int{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8}

// The G function, as specified on page 5.
func g(pa *uint32, pb *uint32, pc *uint32, pd *uint32, m0 uint32, m1 uint32) {
	a, b, c, d := *pa, *pb, *pc, *pd
	a += b + m0
	d = bits.RotateLeft32(d^a, -16)
	c += d
	b = bits.RotateLeft32(b^c, -12)
	a += b + m1
	d = bits.RotateLeft32(d^a, -8)
	c += d
	b = bits.RotateLeft32(b^c, -7)
	*pa, *pb, *pc, *pd = a, b, c, d
}

// A single round: mix the columns, followed by the diagonals.
func round(v *[16]uint32, m *[16]uint32) {
	g(&v[0], &v[4], &v[8], &v[12], m[0], m[1])
	g(&v[1], &v[5], &v[9], &v[13], m[2], m[3])
	g(&v[2], &v[6], &v[10], &v[14], m[4], m[5])
	g(&v[3], &v[7], &v[11], &v[15], m[6], m[7])
	g(&v[0], &v[5], &v[10], &v[15], m[8], m[9])
	g(&v[1], &v[6], &v[11], &v[12], m[10], m[11])
	g(&v[2], &v[7], &v[8], &v[13], m[12], m[13])
	g(&v[3], &v[4], &v[9], &v[14], m[14], m[15])
}

func permute(m *[16]uint32) {
	var permuted [16]uint32
	for i, j := range messagePermutation {
		permuted[i] = m[j]
	}
	*m = permuted
}

// The compression function, as specified on pages 4 to 6. Argument t
// holds the chunk counter for chunk nodes and the output block counter
// when producing root output.
func compress(h *[8]uint32, block *[16]uint32, t uint64, b uint32, d uint32) [16]uint32 {
	// Initialization, as specified on page 5.
	v := [...]uint32{
		h[0], h[1], h[2], h[3],
		h[4], h[5], h[6], h[7],
		iv[0], iv[1], iv[2], iv[3],
		uint32(t), uint32(t >> 32), b, d,
	}

	m := *block
	for r := 0; r < 7; r++ {
		if r > 0 {
			permute(&m)
		}
		round(&v, &m)
	}

	// Output of the compression function, as specified on page 6.
	return [...]uint32{
		v[0] ^ v[8], v[1] ^ v[9], v[2] ^ v[10], v[3] ^ v[11],
		v[4] ^ v[12], v[5] ^ v[13], v[6] ^ v[14], v[7] ^ v[15],
		v[8] ^ h[0], v[9] ^ h[1], v[10] ^ h[2], v[11] ^ h[3],
		v[12] ^ h[4], v[13] ^ h[5], v[14] ^ h[6], v[15] ^ h[7],
	}
}

// Truncate the output of the compression function to 256 bits to obtain
// a chaining value.
func truncate(in [16]uint32) (out [8]uint32) {
	copy(out[:], in[:])
	return
}

// Concatenate two chaining values to obtain a parent node message.
func concatenate(a *[8]uint32, b *[8]uint32) (out [16]uint32) {
	copy(out[:], (*a)[:])
	copy(out[8:], (*b)[:])
	return
}

func wordsFromBlock(block *[BlockSizeBytes]byte) (m [16]uint32) {
	for i := 0; i < len(m); i++ {
		m[i] = binary.LittleEndian.Uint32(block[i*4:])
	}
	return
}

// ChainingValueToBytes converts a chaining value to its 32 byte
// little-endian representation.
func ChainingValueToBytes(cv *[8]uint32) (out [HashSizeBytes]byte) {
	for i, v := range cv {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return
}

// ChainingValueFromBytes is the inverse of ChainingValueToBytes.
func ChainingValueFromBytes(b *[HashSizeBytes]byte) (cv [8]uint32) {
	for i := range cv {
		cv[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return
}
