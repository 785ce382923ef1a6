package blake3

import (
	"encoding/binary"
)

// Node in the BLAKE3 Merkle tree. A node holds the inputs of its
// final compression, so that the choice between producing a chaining
// value and producing root output can be deferred until it is known
// whether the node is the root of the tree.
type Node struct {
	chainingValue [8]uint32
	m             [16]uint32
	counter       uint64
	blockSize     uint32
	flags         uint32
}

// NewChunkNode creates a new Merkle tree node that corresponds to 1 KiB
// of data or less. The chunk counter is the index of the chunk within
// the input.
func NewChunkNode(chainingValue *[8]uint32, m *[16]uint32, chunkCounter uint64, blockSize uint32, chunkStart bool) Node {
	flags := flagChunkEnd
	if chunkStart {
		flags |= flagChunkStart
	}
	return Node{
		chainingValue: *chainingValue,
		m:             *m,
		counter:       chunkCounter,
		blockSize:     blockSize,
		flags:         flags,
	}
}

// NewParentNode creates a new Merkle tree node that combines the
// chaining values of its left and right children.
func NewParentNode(left *[8]uint32, right *[8]uint32) Node {
	return Node{
		chainingValue: iv,
		m:             concatenate(left, right),
		blockSize:     BlockSizeBytes,
		flags:         flagParent,
	}
}

// GetChainingValue computes the chaining value of a non-root node.
// It is used as input when constructing the parent node.
func (n *Node) GetChainingValue() [8]uint32 {
	return truncate(compress(&n.chainingValue, &n.m, n.counter, n.blockSize, n.flags))
}

// GetRootHash computes the hash value of the node, treating it as the
// root of the tree. Only the first 32 bytes of BLAKE3's extendable
// output are produced.
func (n *Node) GetRootHash() (out [HashSizeBytes]byte) {
	h := compress(&n.chainingValue, &n.m, 0, n.blockSize, n.flags|flagRoot)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], h[i])
	}
	return
}
