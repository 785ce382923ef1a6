package buffer

import (
	"io"
)

// ChunkReader is an interface for reading a stream of data in chunks.
// Read() returns io.EOF once all data has been consumed. Chunks
// returned by Read() are never empty.
type ChunkReader interface {
	Read() ([]byte, error)
	Close()
}

type readerBackedChunkReader struct {
	r              io.ReadCloser
	chunkSizeBytes int
	err            error
}

// NewChunkReaderFromReader creates a ChunkReader that reads data from
// an io.ReadCloser. The sizes of the chunks that are returned are
// normalized according to a ChunkPolicy.
func NewChunkReaderFromReader(r io.ReadCloser, chunkPolicy ChunkPolicy) ChunkReader {
	return newNormalizingChunkReader(
		newErrorHandlingChunkReader(
			&readerBackedChunkReader{
				r:              r,
				chunkSizeBytes: chunkPolicy.defaultSizeBytes,
			}),
		chunkPolicy)
}

func (r *readerBackedChunkReader) Read() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	// A fresh buffer is allocated for every chunk, as callers are
	// permitted to hold on to chunks returned earlier.
	chunk := make([]byte, r.chunkSizeBytes)
	n, err := io.ReadFull(r.r, chunk)
	if err == io.ErrUnexpectedEOF {
		r.err = io.EOF
		return chunk[:n], nil
	}
	if err != nil {
		r.err = err
		return nil, err
	}
	return chunk, nil
}

func (r *readerBackedChunkReader) Close() {
	r.r.Close()
}
