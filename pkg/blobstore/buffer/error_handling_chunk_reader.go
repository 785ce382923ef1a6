package buffer

import (
	"io"

	"github.com/buildbarn/blake3-merkle/pkg/util"
)

type errorHandlingChunkReader struct {
	r   ChunkReader
	off int64
}

// newErrorHandlingChunkReader returns a ChunkReader that forwards
// calls to another ChunkReader. Upon I/O failure, it annotates the
// error with the offset at which the failure occurred, retaining its
// status code.
func newErrorHandlingChunkReader(r ChunkReader) ChunkReader {
	return &errorHandlingChunkReader{
		r: r,
	}
}

func (r *errorHandlingChunkReader) Read() ([]byte, error) {
	chunk, err := r.r.Read()
	if err == nil {
		r.off += int64(len(chunk))
		return chunk, nil
	} else if err == io.EOF {
		return nil, io.EOF
	}
	return nil, util.StatusWrapf(err, "Failed to read data at offset %d", r.off)
}

func (r *errorHandlingChunkReader) Close() {
	r.r.Close()
}
