package merkle

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultBlockDepth causes blocks to consist of 2^10 units,
	// which corresponds to 1 MiB of data when using BLAKE3.
	DefaultBlockDepth = 10
	// MaximumBlockDepth is the largest block depth accepted by
	// NewBuilder().
	MaximumBlockDepth = 32
)

// Builder computes the root hash of a tree hash algorithm such as
// BLAKE3 over a stream of data. In addition to the root hash, it
// yields a list of hashes of subtrees that each cover a block of
// 2^blockDepth units. These hashes may be used to validate, transfer
// or deduplicate parts of the data without needing to process the
// data as a whole.
//
// Units are hashed as soon as they have been written completely. Their
// hashes are placed on a stack, where nodes of equal depth are merged
// into their parent. Merging stops at the block depth, so that the
// stack eventually consists of a series of completed blocks, followed
// by at most blockDepth nodes for the block that is being constructed.
//
// Builder is not safe for concurrent use.
type Builder struct {
	treeHasher    TreeHasher
	unitSizeBytes int
	blockDepth    uint8

	nodes []Node

	// The unit that is currently being written.
	leaf          LeafAccumulator
	leafIndex     uint64
	leafSizeBytes int

	finalized bool
}

// NewBuilder creates a Builder that is in the initial state,
// corresponding to an empty stream of data.
func NewBuilder(treeHasher TreeHasher, blockDepth int) (*Builder, error) {
	if blockDepth < 1 || blockDepth > MaximumBlockDepth {
		return nil, status.Errorf(codes.InvalidArgument, "Block depth must be between 1 and %d, while %d was provided", MaximumBlockDepth, blockDepth)
	}
	return &Builder{
		treeHasher:    treeHasher,
		unitSizeBytes: treeHasher.GetUnitSizeBytes(),
		blockDepth:    uint8(blockDepth),
		leaf:          treeHasher.NewLeafAccumulator(0),
	}, nil
}

// Write data, so that it is inserted into the builder's state. All
// data is always consumed.
func (b *Builder) Write(p []byte) (int, error) {
	if b.finalized {
		return 0, status.Error(codes.FailedPrecondition, "Cannot write to a builder that has already been finalized")
	}
	nWritten := len(p)
	for len(p) > 0 {
		if b.leafSizeBytes == b.unitSizeBytes {
			// The current unit is complete and is followed
			// by more data, meaning it cannot be the root.
			b.push(false)
			b.leafIndex++
			b.leaf = b.treeHasher.NewLeafAccumulator(b.leafIndex)
			b.leafSizeBytes = 0
		}
		n := b.unitSizeBytes - b.leafSizeBytes
		if n > len(p) {
			n = len(p)
		}
		b.leaf.Write(p[:n])
		b.leafSizeBytes += n
		p = p[n:]
	}
	return nWritten, nil
}

// push finalizes the current unit and places its hash on the stack,
// merging it with preceding nodes of the same depth. When finalize is
// set, the unit is the last one. The merge that leaves only a single
// node on the stack then produces the root.
func (b *Builder) push(finalize bool) {
	hash := b.leaf.Finalize(finalize && len(b.nodes) == 0)
	depth := uint8(0)
	for depth < b.blockDepth && len(b.nodes) > 0 {
		left := b.nodes[len(b.nodes)-1]
		if left.Depth != depth {
			break
		}
		b.nodes = b.nodes[:len(b.nodes)-1]
		hash = b.treeHasher.Combine(&left.Hash, &hash, finalize && len(b.nodes) == 0)
		depth++
	}
	b.nodes = append(b.nodes, Node{Hash: hash, Depth: depth})
}

// Finalize the builder after all data has been written. Nodes that
// follow the last completed block are combined into a single tail
// node. If no completed blocks exist, the tail node is the root.
func (b *Builder) Finalize() error {
	if b.finalized {
		return status.Error(codes.FailedPrecondition, "Builder has already been finalized")
	}
	b.finalized = true
	if b.leafSizeBytes == 0 && len(b.nodes) == 0 {
		// Empty input. There are no blocks.
		b.leaf = nil
		return nil
	}

	b.push(true)
	b.leaf = nil

	i := len(b.nodes) - 1
	tail := b.nodes[i]
	for i > 0 && b.nodes[i-1].Depth != b.blockDepth {
		i--
		tail.Hash = b.treeHasher.Combine(&b.nodes[i].Hash, &tail.Hash, i == 0)
		tail.Depth = b.nodes[i].Depth
	}
	b.nodes = append(b.nodes[:i], tail)
	return nil
}

// GetBlocks returns the hashes of all blocks of data. All entries
// have depth blockDepth, except for the last entry, which may be a
// tail node of lower depth covering the remaining data. The list is
// empty if no data was written.
func (b *Builder) GetBlocks() ([]Node, error) {
	if !b.finalized {
		return nil, status.Error(codes.FailedPrecondition, "Blocks can only be obtained after the builder has been finalized")
	}
	return append([]Node{}, b.nodes...), nil
}

// GetRootHash returns the hash value of all of the data written. It
// may be called repeatedly.
func (b *Builder) GetRootHash() (Hash, error) {
	if !b.finalized {
		return Hash{}, status.Error(codes.FailedPrecondition, "Root hash can only be obtained after the builder has been finalized")
	}
	return ComputeRootHash(b.treeHasher, b.nodes), nil
}

// GetPartialRootHash folds the nodes that are currently on the stack
// into a single hash. Prior to finalization, the result does not
// account for the unit that is still being written, nor does it use
// the root domain of the tree hash. It is only of use for diagnostics.
func (b *Builder) GetPartialRootHash() Hash {
	return ComputeRootHash(b.treeHasher, b.nodes)
}

// GetSizeBytes returns the total amount of data written.
func (b *Builder) GetSizeBytes() int64 {
	return int64(b.leafIndex)*int64(b.unitSizeBytes) + int64(b.leafSizeBytes)
}

// GetBlockDepth returns the depth of the blocks emitted by the builder.
func (b *Builder) GetBlockDepth() int {
	return int(b.blockDepth)
}

// IsFinalized returns whether Finalize() has been called.
func (b *Builder) IsFinalized() bool {
	return b.finalized
}
