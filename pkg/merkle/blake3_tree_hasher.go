package merkle

import (
	"github.com/buildbarn/blake3-merkle/pkg/digest/blake3"
)

type blake3TreeHasher struct{}

// NewBLAKE3TreeHasher creates a TreeHasher that computes standard
// BLAKE3 hash values. Units correspond to BLAKE3's 1 KiB chunks.
func NewBLAKE3TreeHasher() TreeHasher {
	return blake3TreeHasher{}
}

func (blake3TreeHasher) GetUnitSizeBytes() int {
	return blake3.ChunkSizeBytes
}

func (blake3TreeHasher) NewLeafAccumulator(unitIndex uint64) LeafAccumulator {
	return &blake3LeafAccumulator{
		chunk: blake3.NewChunkState(unitIndex),
	}
}

func getNodeHash(n *blake3.Node, isRoot bool) Hash {
	if isRoot {
		return n.GetRootHash()
	}
	chainingValue := n.GetChainingValue()
	return blake3.ChainingValueToBytes(&chainingValue)
}

func (blake3TreeHasher) Combine(left *Hash, right *Hash, isRoot bool) Hash {
	l := blake3.ChainingValueFromBytes((*[HashSizeBytes]byte)(left))
	r := blake3.ChainingValueFromBytes((*[HashSizeBytes]byte)(right))
	n := blake3.NewParentNode(&l, &r)
	return getNodeHash(&n, isRoot)
}

func (blake3TreeHasher) GetEmptyHash() Hash {
	n := blake3.NewChunkState(0).GetNode()
	return n.GetRootHash()
}

type blake3LeafAccumulator struct {
	chunk *blake3.ChunkState
}

func (la *blake3LeafAccumulator) Write(p []byte) {
	la.chunk.Write(p)
}

func (la *blake3LeafAccumulator) Finalize(isRoot bool) Hash {
	n := la.chunk.GetNode()
	return getNodeHash(&n, isRoot)
}
