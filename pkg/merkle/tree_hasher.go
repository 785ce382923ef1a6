package merkle

import (
	"encoding/hex"
)

// HashSizeBytes is the size of the digests stored in the Merkle tree.
const HashSizeBytes = 32

// Hash of a node in the Merkle tree. For nodes that are not the root,
// this is the chaining value of the node. For the root node, it is the
// hash value of the data.
type Hash [HashSizeBytes]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Node of the Merkle tree, as tracked by Builder. A node of depth k
// covers 2^k consecutive units, except for the tail node of a finalized
// block list, which may cover fewer.
type Node struct {
	Hash  Hash
	Depth uint8
}

// LeafAccumulator buffers the data of a single unit of input. Units
// have a fixed size, except for the last one, which may be smaller.
type LeafAccumulator interface {
	// Write data into the unit. The total amount of data written
	// must not exceed the unit size.
	Write(p []byte)
	// Finalize computes the hash of the unit. When isRoot is set,
	// the unit is the only unit of the input, meaning its hash is
	// the hash value of the input as a whole.
	Finalize(isRoot bool) Hash
}

// TreeHasher provides the hashing primitives of the tree hash
// algorithm used by Builder.
type TreeHasher interface {
	// GetUnitSizeBytes returns the size of the units of input that
	// form the leaves of the tree.
	GetUnitSizeBytes() int
	// NewLeafAccumulator creates a LeafAccumulator for the unit at
	// a given index.
	NewLeafAccumulator(unitIndex uint64) LeafAccumulator
	// Combine computes the hash of a parent node. When isRoot is
	// set, the parent is the root of the tree.
	Combine(left *Hash, right *Hash, isRoot bool) Hash
	// GetEmptyHash returns the hash value of empty input.
	GetEmptyHash() Hash
}
