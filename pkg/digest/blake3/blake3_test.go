package blake3_test

import (
	"encoding/hex"
	"testing"

	"github.com/buildbarn/blake3-merkle/pkg/digest/blake3"
	"github.com/stretchr/testify/require"
	reference "github.com/zeebo/blake3"
)

// Simple repetitive sequence of bytes used for test vectors.
func getIdentity251(sizeBytes int) []byte {
	b := make([]byte, sizeBytes)
	for i := 0; i < len(b); i++ {
		b[i] = byte(i % 251)
	}
	return b
}

// getSubtreeNode computes the node of the subtree covering data,
// starting at a given chunk, by splitting it up the same way as
// BLAKE3: the left subtree contains the largest power of two number
// of chunks that leaves at least one chunk to the right.
func getSubtreeNode(data []byte, chunkCounter uint64) blake3.Node {
	if len(data) <= blake3.ChunkSizeBytes {
		s := blake3.NewChunkState(chunkCounter)
		s.Write(data)
		return s.GetNode()
	}
	leftChunks := uint64(1)
	for (leftChunks*2)*blake3.ChunkSizeBytes < uint64(len(data)) {
		leftChunks *= 2
	}
	leftNode := getSubtreeNode(data[:leftChunks*blake3.ChunkSizeBytes], chunkCounter)
	rightNode := getSubtreeNode(data[leftChunks*blake3.ChunkSizeBytes:], chunkCounter+leftChunks)
	leftChainingValue := leftNode.GetChainingValue()
	rightChainingValue := rightNode.GetChainingValue()
	return blake3.NewParentNode(&leftChainingValue, &rightChainingValue)
}

func TestPrimitives(t *testing.T) {
	identity251 := getIdentity251(102400)

	t.Run("KnownValues", func(t *testing.T) {
		// Official test vectors for the empty input and the
		// first 1 KiB of the input used by the BLAKE3 test suite.
		n := getSubtreeNode(nil, 0)
		h := n.GetRootHash()
		require.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", hex.EncodeToString(h[:]))
		n = getSubtreeNode(identity251[:1024], 0)
		h = n.GetRootHash()
		require.Equal(t, "42214739f095a406f3fc83deb889744ac00df831c10daa55189b5d121c855af7", hex.EncodeToString(h[:]))
	})

	t.Run("Reference", func(t *testing.T) {
		for _, size := range []int{
			0, 1, 63, 64, 65, 1023, 1024, 1025, 2048, 2049, 3072, 3073,
			4096, 4097, 5120, 5121, 6144, 6145, 7168, 7169, 8192, 8193,
			16384, 31744, 102400,
		} {
			n := getSubtreeNode(identity251[:size], 0)
			require.Equal(t, reference.Sum256(identity251[:size]), n.GetRootHash(), "Size %d", size)
		}
	})
}
