package merkle_test

import (
	"testing"

	"github.com/buildbarn/blake3-merkle/pkg/merkle"
	"github.com/stretchr/testify/require"
	reference "github.com/zeebo/blake3"
)

func TestBLAKE3TreeHasher(t *testing.T) {
	treeHasher := merkle.NewBLAKE3TreeHasher()
	identity251 := getIdentity251(2048)

	t.Run("EmptyHash", func(t *testing.T) {
		require.Equal(t, merkle.Hash(reference.Sum256(nil)), treeHasher.GetEmptyHash())
	})

	t.Run("RootLeaf", func(t *testing.T) {
		leaf := treeHasher.NewLeafAccumulator(0)
		leaf.Write(identity251[:500])
		leaf.Write(identity251[500:1024])
		require.Equal(t, merkle.Hash(reference.Sum256(identity251[:1024])), leaf.Finalize(true))
	})

	t.Run("TwoLeaves", func(t *testing.T) {
		left := treeHasher.NewLeafAccumulator(0)
		left.Write(identity251[:1024])
		leftHash := left.Finalize(false)
		right := treeHasher.NewLeafAccumulator(1)
		right.Write(identity251[1024:])
		rightHash := right.Finalize(false)

		require.Equal(t, merkle.Hash(reference.Sum256(identity251)), treeHasher.Combine(&leftHash, &rightHash, true))
		require.NotEqual(t, treeHasher.Combine(&leftHash, &rightHash, true), treeHasher.Combine(&leftHash, &rightHash, false))
	})

	t.Run("UnitIndexMatters", func(t *testing.T) {
		// BLAKE3 mixes the chunk counter into the chaining
		// value, so identical data at different positions
		// yields different hashes.
		a := treeHasher.NewLeafAccumulator(0)
		a.Write(identity251[:1024])
		b := treeHasher.NewLeafAccumulator(1)
		b.Write(identity251[:1024])
		require.NotEqual(t, a.Finalize(false), b.Finalize(false))
	})
}
