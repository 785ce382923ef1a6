package digest

import (
	"github.com/buildbarn/blake3-merkle/pkg/merkle"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Manifest describes a blob as a whole, together with the hashes of
// the blocks of which it consists. Every block spans
// 2^blockDepth units, except for the last block, which may be smaller.
// Block hashes may be used to determine which parts of a blob changed
// between two versions of it, without needing to compare the data.
type Manifest struct {
	digest         Digest
	blockDepth     int
	blockSizeBytes int64
	blocks         []merkle.Node
}

func convertSizeToBlockCount(blobSizeBytes int64, blockSizeBytes int64) int64 {
	blockCount := blobSizeBytes / blockSizeBytes
	if blobSizeBytes%blockSizeBytes != 0 {
		blockCount++
	}
	return blockCount
}

// NewManifest captures the results of a Builder that has been
// finalized.
func NewManifest(treeHasher merkle.TreeHasher, builder *merkle.Builder) (*Manifest, error) {
	rootHash, err := builder.GetRootHash()
	if err != nil {
		return nil, err
	}
	blocks, err := builder.GetBlocks()
	if err != nil {
		return nil, err
	}
	sizeBytes := builder.GetSizeBytes()
	d, err := NewDigestFromHash(rootHash, sizeBytes)
	if err != nil {
		return nil, err
	}
	blockDepth := builder.GetBlockDepth()
	return &Manifest{
		digest:         d,
		blockDepth:     blockDepth,
		blockSizeBytes: merkle.GetBlockSizeBytes(treeHasher, blockDepth),
		blocks:         blocks,
	}, nil
}

// GetDigest returns the digest of the blob described by the manifest.
func (m *Manifest) GetDigest() Digest {
	return m.digest
}

// GetBlockDepth returns the depth of the full blocks in the manifest.
func (m *Manifest) GetBlockDepth() int {
	return m.blockDepth
}

// GetBlockSizeBytes returns the size of the full blocks in the
// manifest.
func (m *Manifest) GetBlockSizeBytes() int64 {
	return m.blockSizeBytes
}

// GetBlockCount returns the number of blocks in the manifest.
func (m *Manifest) GetBlockCount() int {
	return len(m.blocks)
}

// GetBlocks returns a copy of the list of blocks.
func (m *Manifest) GetBlocks() []merkle.Node {
	return append([]merkle.Node(nil), m.blocks...)
}

// GetBlockRange returns the offset and size of the data covered by a
// block.
func (m *Manifest) GetBlockRange(index int) (int64, int64) {
	if index < 0 || index >= len(m.blocks) {
		panic("Block index out of range")
	}
	offsetBytes := int64(index) * m.blockSizeBytes
	sizeBytes := m.blockSizeBytes
	if remaining := m.digest.GetSizeBytes() - offsetBytes; sizeBytes > remaining {
		sizeBytes = remaining
	}
	return offsetBytes, sizeBytes
}

// GetBlockIndex returns the index of the block that contains the byte
// at a given offset.
func (m *Manifest) GetBlockIndex(offsetBytes int64) (int, error) {
	if sizeBytes := m.digest.GetSizeBytes(); offsetBytes < 0 || offsetBytes >= sizeBytes {
		return 0, status.Errorf(codes.InvalidArgument, "Offset %d lies outside blob of %d bytes", offsetBytes, sizeBytes)
	}
	return int(offsetBytes / m.blockSizeBytes), nil
}

// GetBlockDigest returns a digest of the block that contains the byte
// at a given offset, together with the offset at which the block
// starts. The hash stored in the digest is the chaining value of the
// block's subtree, meaning it is only meaningful at the position at
// which it was computed.
func (m *Manifest) GetBlockDigest(offsetBytes int64) (Digest, int64, error) {
	index, err := m.GetBlockIndex(offsetBytes)
	if err != nil {
		return BadDigest, 0, err
	}
	blockOffsetBytes, blockSizeBytes := m.GetBlockRange(index)
	d, err := NewDigestFromHash(m.blocks[index].Hash, blockSizeBytes)
	if err != nil {
		return BadDigest, 0, err
	}
	return d, blockOffsetBytes, nil
}

// GetChangedBlocks returns the indices of the blocks in a new manifest
// whose contents differ from the ones in an old manifest. Blocks are
// compared by position, as block hashes depend on the offset at which
// they are stored. If both manifests use a different block depth,
// all blocks are reported.
func GetChangedBlocks(oldManifest *Manifest, newManifest *Manifest) []int {
	var changed []int
	for i, newBlock := range newManifest.blocks {
		if oldManifest == nil ||
			oldManifest.blockDepth != newManifest.blockDepth ||
			i >= len(oldManifest.blocks) ||
			oldManifest.blocks[i] != newBlock {
			changed = append(changed, i)
			continue
		}
		_, oldSizeBytes := oldManifest.GetBlockRange(i)
		if _, newSizeBytes := newManifest.GetBlockRange(i); oldSizeBytes != newSizeBytes {
			changed = append(changed, i)
		}
	}
	return changed
}
