package merkle

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	treeHasherPrometheusMetrics sync.Once

	treeHasherLeavesFinalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "merkle",
			Name:      "tree_hasher_leaves_finalized_total",
			Help:      "Number of units whose hash was computed.",
		},
		[]string{"name", "root"})
	treeHasherCombines = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "merkle",
			Name:      "tree_hasher_combines_total",
			Help:      "Number of parent nodes whose hash was computed.",
		},
		[]string{"name", "root"})
)

type metricsTreeHasher struct {
	base TreeHasher

	leavesFinalizedNonRoot prometheus.Counter
	leavesFinalizedRoot    prometheus.Counter
	combinesNonRoot        prometheus.Counter
	combinesRoot           prometheus.Counter
}

// NewMetricsTreeHasher creates a decorator for TreeHasher that exposes
// the number of hashing operations performed through Prometheus. The
// operations are split up by whether they produced the root, meaning
// that the root counters should increase by at most one for every
// hashed stream of data.
func NewMetricsTreeHasher(base TreeHasher, name string) TreeHasher {
	treeHasherPrometheusMetrics.Do(func() {
		prometheus.MustRegister(treeHasherLeavesFinalized)
		prometheus.MustRegister(treeHasherCombines)
	})

	return &metricsTreeHasher{
		base: base,

		leavesFinalizedNonRoot: treeHasherLeavesFinalized.WithLabelValues(name, strconv.FormatBool(false)),
		leavesFinalizedRoot:    treeHasherLeavesFinalized.WithLabelValues(name, strconv.FormatBool(true)),
		combinesNonRoot:        treeHasherCombines.WithLabelValues(name, strconv.FormatBool(false)),
		combinesRoot:           treeHasherCombines.WithLabelValues(name, strconv.FormatBool(true)),
	}
}

func (th *metricsTreeHasher) GetUnitSizeBytes() int {
	return th.base.GetUnitSizeBytes()
}

func (th *metricsTreeHasher) NewLeafAccumulator(unitIndex uint64) LeafAccumulator {
	return &metricsLeafAccumulator{
		base:       th.base.NewLeafAccumulator(unitIndex),
		treeHasher: th,
	}
}

func (th *metricsTreeHasher) Combine(left *Hash, right *Hash, isRoot bool) Hash {
	if isRoot {
		th.combinesRoot.Inc()
	} else {
		th.combinesNonRoot.Inc()
	}
	return th.base.Combine(left, right, isRoot)
}

func (th *metricsTreeHasher) GetEmptyHash() Hash {
	return th.base.GetEmptyHash()
}

type metricsLeafAccumulator struct {
	base       LeafAccumulator
	treeHasher *metricsTreeHasher
}

func (la *metricsLeafAccumulator) Write(p []byte) {
	la.base.Write(p)
}

func (la *metricsLeafAccumulator) Finalize(isRoot bool) Hash {
	if isRoot {
		la.treeHasher.leavesFinalizedRoot.Inc()
	} else {
		la.treeHasher.leavesFinalizedNonRoot.Inc()
	}
	return la.base.Finalize(isRoot)
}
