package merkle

// ComputeRootHash folds a list of nodes into the root hash of the
// tree. The nodes are paired up from left to right, carrying over an
// unpaired trailing node, until only two nodes remain. These are then
// combined into the root. This yields the same left-balanced tree as
// the one BLAKE3 constructs, provided that all nodes but the last
// cover an identical power-of-two number of units.
//
// A single node is returned as is, as Builder already computes it
// using the root domain.
func ComputeRootHash(treeHasher TreeHasher, nodes []Node) Hash {
	switch len(nodes) {
	case 0:
		return treeHasher.GetEmptyHash()
	case 1:
		return nodes[0].Hash
	}

	hashes := make([]Hash, 0, len(nodes))
	for _, n := range nodes {
		hashes = append(hashes, n.Hash)
	}
	for len(hashes) > 2 {
		parents := make([]Hash, 0, (len(hashes)+1)/2)
		for i := 0; i+1 < len(hashes); i += 2 {
			parents = append(parents, treeHasher.Combine(&hashes[i], &hashes[i+1], false))
		}
		if len(hashes)%2 != 0 {
			parents = append(parents, hashes[len(hashes)-1])
		}
		hashes = parents
	}
	return treeHasher.Combine(&hashes[0], &hashes[1], true)
}

// GetBlockSizeBytes returns the amount of data covered by a block of a
// given depth.
func GetBlockSizeBytes(treeHasher TreeHasher, blockDepth int) int64 {
	return int64(treeHasher.GetUnitSizeBytes()) << uint(blockDepth)
}
