package merkle_test

import (
	"fmt"

	"github.com/zeebo/blake3"
	"github.com/buildbarn/blake3-merkle/pkg/merkle"
)

// symbolicTreeHasher is a TreeHasher that keeps track of the
// expressions from which hashes were computed. This makes it possible
// to write tests that validate the shape of the tree. Units are 4
// bytes in size. Hashes computed with the root flag set are suffixed
// with an exclamation mark.
type symbolicTreeHasher struct {
	expressions map[merkle.Hash]string
}

func newSymbolicTreeHasher() *symbolicTreeHasher {
	return &symbolicTreeHasher{
		expressions: map[merkle.Hash]string{},
	}
}

func (th *symbolicTreeHasher) newHash(expression string) merkle.Hash {
	h := merkle.Hash(blake3.Sum256([]byte(expression)))
	th.expressions[h] = expression
	return h
}

func (th *symbolicTreeHasher) render(h merkle.Hash) string {
	expression, ok := th.expressions[h]
	if !ok {
		panic("Hash was not computed by this tree hasher")
	}
	return expression
}

func (th *symbolicTreeHasher) renderNodes(nodes []merkle.Node) []string {
	rendered := make([]string, 0, len(nodes))
	for _, n := range nodes {
		rendered = append(rendered, fmt.Sprintf("%d:%s", n.Depth, th.render(n.Hash)))
	}
	return rendered
}

func withRootMarker(expression string, isRoot bool) string {
	if isRoot {
		return expression + "!"
	}
	return expression
}

func (th *symbolicTreeHasher) GetUnitSizeBytes() int {
	return 4
}

func (th *symbolicTreeHasher) NewLeafAccumulator(unitIndex uint64) merkle.LeafAccumulator {
	return &symbolicLeafAccumulator{
		treeHasher: th,
		unitIndex:  unitIndex,
	}
}

func (th *symbolicTreeHasher) Combine(left *merkle.Hash, right *merkle.Hash, isRoot bool) merkle.Hash {
	return th.newHash(withRootMarker(fmt.Sprintf("(%s %s)", th.render(*left), th.render(*right)), isRoot))
}

func (th *symbolicTreeHasher) GetEmptyHash() merkle.Hash {
	return th.newHash("empty")
}

type symbolicLeafAccumulator struct {
	treeHasher *symbolicTreeHasher
	unitIndex  uint64
	data       []byte
}

func (la *symbolicLeafAccumulator) Write(p []byte) {
	if len(la.data)+len(p) > 4 {
		panic("Unit overflow")
	}
	la.data = append(la.data, p...)
}

func (la *symbolicLeafAccumulator) Finalize(isRoot bool) merkle.Hash {
	return la.treeHasher.newHash(withRootMarker(fmt.Sprintf("%d=%s", la.unitIndex, la.data), isRoot))
}
