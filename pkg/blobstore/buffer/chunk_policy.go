package buffer

// ChunkPolicy is provided as an argument to NewChunkReaderFromReader().
// It specifies the desired size of chunks returned by
// ChunkReader.Read().
type ChunkPolicy struct {
	minimumSizeBytes int
	defaultSizeBytes int
	maximumSizeBytes int
}

// ChunkSizeExactly can be used if the ChunkReader should return chunks
// of an exact size. Only the final chunk that is returned may be
// smaller than the specified size. This is useful when chunks need to
// be aligned to blocks of a Merkle tree.
func ChunkSizeExactly(sizeBytes int) ChunkPolicy {
	return ChunkPolicy{
		minimumSizeBytes: sizeBytes,
		defaultSizeBytes: sizeBytes,
		maximumSizeBytes: sizeBytes,
	}
}

// ChunkSizeAtMost can be used if the ChunkReader is permitted to return
// chunks that are smaller than the specified size. This policy performs
// the least amount of copying of data.
func ChunkSizeAtMost(sizeBytes int) ChunkPolicy {
	return ChunkPolicy{
		minimumSizeBytes: 1,
		defaultSizeBytes: sizeBytes,
		maximumSizeBytes: sizeBytes,
	}
}
