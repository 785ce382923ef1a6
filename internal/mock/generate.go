package mock

//go:generate mockgen -destination buffer.go -package mock github.com/buildbarn/blake3-merkle/pkg/blobstore/buffer ChunkReader
//go:generate mockgen -destination io.go -package mock io ReadCloser,Writer
//go:generate mockgen -destination merkle.go -package mock github.com/buildbarn/blake3-merkle/pkg/merkle LeafAccumulator,TreeHasher
