package blake3

// ChunkState accumulates the data of a single 1 KiB chunk. Data is
// split up in 64 byte blocks. All blocks but the last are compressed
// as soon as data following them is written. The last block is kept,
// as it needs to be compressed with the CHUNK_END flag set and, if the
// chunk turns out to be the only chunk of the input, the ROOT flag.
type ChunkState struct {
	chunkCounter uint64

	// Construction of the current block.
	block     [BlockSizeBytes]byte
	blockSize uint32

	// Chaining value of the blocks compressed so far.
	blocksCompressed int
	chainingValue    [8]uint32
}

// NewChunkState creates a ChunkState for the chunk at a given index
// within the input. The index is used as BLAKE3's chunk counter.
func NewChunkState(chunkCounter uint64) *ChunkState {
	return &ChunkState{
		chunkCounter:  chunkCounter,
		chainingValue: iv,
	}
}

// GetSizeBytes returns the number of bytes written into the chunk.
func (s *ChunkState) GetSizeBytes() int {
	return s.blocksCompressed*BlockSizeBytes + int(s.blockSize)
}

// Write data into the chunk. Writing more than ChunkSizeBytes in
// total is not permitted.
func (s *ChunkState) Write(p []byte) (int, error) {
	if s.GetSizeBytes()+len(p) > ChunkSizeBytes {
		panic("Attempted to write past the end of a chunk")
	}
	nWritten := len(p)
	for {
		// Store more data within the current 64 byte block.
		n := copy(s.block[s.blockSize:], p)
		p = p[n:]
		s.blockSize += uint32(n)
		if len(p) == 0 {
			return nWritten, nil
		}

		// Current 64 byte block is complete and more data
		// follows, meaning it is not the last block.
		flags := uint32(0)
		if s.blocksCompressed == 0 {
			flags |= flagChunkStart
		}
		m := wordsFromBlock(&s.block)
		s.chainingValue = truncate(compress(&s.chainingValue, &m, s.chunkCounter, BlockSizeBytes, flags))
		s.blocksCompressed++
		s.blockSize = 0
	}
}

// GetNode returns the Merkle tree node of the chunk, containing all of
// the data written so far. It does not alter the state of the chunk.
func (s *ChunkState) GetNode() Node {
	// Pad the data in the final 64 byte block with trailing zeroes.
	block := s.block
	for i := s.blockSize; i < BlockSizeBytes; i++ {
		block[i] = 0
	}
	m := wordsFromBlock(&block)
	return NewChunkNode(&s.chainingValue, &m, s.chunkCounter, s.blockSize, s.blocksCompressed == 0)
}
