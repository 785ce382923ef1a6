package digest

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/buildbarn/blake3-merkle/pkg/merkle"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Functions for marshaling and unmarshaling manifests.
//
// A marshaled manifest starts with a header, containing a magic value,
// the block depth, the size of the blob, its root hash and the number
// of blocks. The header is followed by one record per block, holding
// the hash of the block and its depth. All integers are little endian.

const (
	manifestHeaderSizeBytes = 4 + 1 + 8 + merkle.HashSizeBytes + 8
	manifestRecordSizeBytes = merkle.HashSizeBytes + 1
)

var manifestMagic = [...]byte{'B', '3', 'M', 'F'}

// Marshal the manifest into its binary form.
func (m *Manifest) Marshal() []byte {
	data := make([]byte, manifestHeaderSizeBytes, manifestHeaderSizeBytes+len(m.blocks)*manifestRecordSizeBytes)
	entry := data
	copy(entry, manifestMagic[:])
	entry[4] = byte(m.blockDepth)
	binary.LittleEndian.PutUint64(entry[5:], uint64(m.digest.GetSizeBytes()))
	rootHash := m.digest.GetHash()
	copy(entry[13:], rootHash[:])
	binary.LittleEndian.PutUint64(entry[13+merkle.HashSizeBytes:], uint64(len(m.blocks)))

	for _, block := range m.blocks {
		data = append(data, block.Hash[:]...)
		data = append(data, block.Depth)
	}
	return data
}

// UnmarshalManifest parses a manifest that was created using
// Manifest.Marshal(). In addition to checking the framing, it
// validates that the blocks are consistent with the size of the blob,
// and that the blocks reduce to the root hash stored in the header.
func UnmarshalManifest(treeHasher merkle.TreeHasher, data []byte) (*Manifest, error) {
	if len(data) < manifestHeaderSizeBytes {
		return nil, status.Errorf(codes.InvalidArgument, "Manifest is %d bytes in size, while at least %d bytes were expected", len(data), manifestHeaderSizeBytes)
	}
	if !bytes.Equal(data[:4], manifestMagic[:]) {
		return nil, status.Error(codes.InvalidArgument, "Manifest does not start with the expected magic")
	}
	blockDepth := int(data[4])
	if blockDepth < 1 || blockDepth > merkle.MaximumBlockDepth {
		return nil, status.Errorf(codes.InvalidArgument, "Manifest has block depth %d, while it must be between 1 and %d", blockDepth, merkle.MaximumBlockDepth)
	}
	rawSizeBytes := binary.LittleEndian.Uint64(data[5:])
	if rawSizeBytes > math.MaxInt64 {
		return nil, status.Errorf(codes.InvalidArgument, "Manifest has invalid blob size %d", rawSizeBytes)
	}
	sizeBytes := int64(rawSizeBytes)
	var rootHash merkle.Hash
	copy(rootHash[:], data[13:])
	blockCount := binary.LittleEndian.Uint64(data[13+merkle.HashSizeBytes:])

	blockSizeBytes := merkle.GetBlockSizeBytes(treeHasher, blockDepth)
	if expectedBlockCount := convertSizeToBlockCount(sizeBytes, blockSizeBytes); blockCount != uint64(expectedBlockCount) {
		return nil, status.Errorf(codes.InvalidArgument, "Manifest contains %d blocks, while a blob of %d bytes requires %d blocks", blockCount, sizeBytes, expectedBlockCount)
	}
	records := data[manifestHeaderSizeBytes:]
	if uint64(len(records)) != blockCount*manifestRecordSizeBytes {
		return nil, status.Errorf(codes.InvalidArgument, "Manifest contains %d bytes of block records, while %d blocks require %d bytes", len(records), blockCount, blockCount*manifestRecordSizeBytes)
	}

	// Only the last block may be smaller than a full block. Its depth
	// is that of the largest power of two units it contains.
	tailDepth := uint8(blockDepth)
	if remainderBytes := sizeBytes % blockSizeBytes; remainderBytes != 0 {
		unitSizeBytes := int64(treeHasher.GetUnitSizeBytes())
		units := uint64((remainderBytes + unitSizeBytes - 1) / unitSizeBytes)
		tailDepth = uint8(bits.Len64(units) - 1)
	}
	blocks := make([]merkle.Node, 0, blockCount)
	for i := uint64(0); i < blockCount; i++ {
		var block merkle.Node
		copy(block.Hash[:], records)
		block.Depth = records[merkle.HashSizeBytes]
		records = records[manifestRecordSizeBytes:]

		expectedDepth := uint8(blockDepth)
		if i == blockCount-1 {
			expectedDepth = tailDepth
		}
		if block.Depth != expectedDepth {
			return nil, status.Errorf(codes.InvalidArgument, "Block %d has depth %d, while %d was expected", i, block.Depth, expectedDepth)
		}
		blocks = append(blocks, block)
	}

	if computedRootHash := merkle.ComputeRootHash(treeHasher, blocks); computedRootHash != rootHash {
		return nil, status.Errorf(codes.InvalidArgument, "Blocks reduce to root hash %s, while the manifest has root hash %s", computedRootHash, rootHash)
	}
	d, err := NewDigestFromHash(rootHash, sizeBytes)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		digest:         d,
		blockDepth:     blockDepth,
		blockSizeBytes: blockSizeBytes,
		blocks:         blocks,
	}, nil
}
