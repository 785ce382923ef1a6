package buffer

import (
	"io"
)

type normalizingChunkReader struct {
	ChunkReader
	minimumChunkSizeBytes int
	maximumChunkSizeBytes int

	pending []byte
	err     error
}

// newNormalizingChunkReader creates a decorator for ChunkReader that
// makes the sizes of chunks comply with a ChunkPolicy. Small chunks
// are joined together, while chunks that exceed the maximum size are
// split up. Empty chunks are never returned.
func newNormalizingChunkReader(r ChunkReader, chunkPolicy ChunkPolicy) ChunkReader {
	return &normalizingChunkReader{
		ChunkReader:           r,
		minimumChunkSizeBytes: chunkPolicy.minimumSizeBytes,
		maximumChunkSizeBytes: chunkPolicy.maximumSizeBytes,
	}
}

func (r *normalizingChunkReader) readNextChunk() ([]byte, error) {
	if len(r.pending) > 0 {
		chunk := r.pending
		r.pending = nil
		return chunk, nil
	}
	if r.err != nil {
		return nil, r.err
	}
	chunk, err := r.ChunkReader.Read()
	r.err = err
	return chunk, err
}

func (r *normalizingChunkReader) readChunkWithMinimumSize() ([]byte, error) {
	chunk, err := r.readNextChunk()
	if err != nil {
		return nil, err
	}
	if len(chunk) >= r.minimumChunkSizeBytes {
		return chunk, nil
	}

	// Concatenate chunks until the minimum size is reached. The
	// final chunk of the stream may be smaller.
	fullChunk := append([]byte{}, chunk...)
	for len(fullChunk) < r.minimumChunkSizeBytes {
		chunk, err := r.readNextChunk()
		if err == io.EOF && len(fullChunk) > 0 {
			break
		} else if err != nil {
			return nil, err
		}
		fullChunk = append(fullChunk, chunk...)
	}
	return fullChunk, nil
}

func (r *normalizingChunkReader) Read() ([]byte, error) {
	chunk, err := r.readChunkWithMinimumSize()
	if err != nil {
		return nil, err
	}
	if len(chunk) > r.maximumChunkSizeBytes {
		r.pending = chunk[r.maximumChunkSizeBytes:]
		return chunk[:r.maximumChunkSizeBytes], nil
	}
	return chunk, nil
}
