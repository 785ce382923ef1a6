package main

import (
	"github.com/buildbarn/blake3-merkle/pkg/merkle"
)

// ApplicationConfiguration holds the settings of blake3_merkle that
// may be provided through a Jsonnet configuration file.
type ApplicationConfiguration struct {
	// Blocks span 2^blockDepth units of 1 KiB.
	BlockDepth int `json:"blockDepth"`
	// Size of the reads performed against input files.
	ReadChunkSizeBytes int `json:"readChunkSizeBytes"`
	// Path of the Bolt database in which manifests are stored.
	ManifestStorePath string `json:"manifestStorePath"`
	// If set, Prometheus metrics are written to this file upon
	// completion, in the format used by the node exporter's
	// textfile collector.
	MetricsTextfilePath string `json:"metricsTextfilePath"`
	// Logrus log level, such as "info" or "debug".
	LogLevel string `json:"logLevel"`
}

func newDefaultConfiguration() ApplicationConfiguration {
	return ApplicationConfiguration{
		BlockDepth:         merkle.DefaultBlockDepth,
		ReadChunkSizeBytes: 64 * 1024,
		ManifestStorePath:  "manifests.db",
		LogLevel:           "info",
	}
}
